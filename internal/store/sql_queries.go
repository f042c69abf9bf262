package store

const (
	createRecordIfAbsent = `INSERT INTO users (id, current_intake, target_intake)
    VALUES ($1, $2, $3)
    ON CONFLICT (id) DO NOTHING;`

	getRecord = `SELECT id, current_intake, target_intake, partner_id, last_updated
    FROM users
    WHERE id = $1;`

	getPartnerForUpdate = `SELECT partner_id
    FROM users
    WHERE id = $1
    FOR UPDATE;`

	setPartner = `UPDATE users
    SET partner_id = $2
    WHERE id = $1;`

	clearPartner = `UPDATE users
    SET partner_id = NULL
    WHERE id = $1;`

	upsertHistoryEntry = `INSERT INTO history (user_id, day, amount)
    VALUES ($1, $2, $3)
    ON CONFLICT (user_id, day) DO UPDATE SET amount = EXCLUDED.amount;`

	getHistoryEntry = `SELECT day, amount
    FROM history
    WHERE user_id = $1 AND day = $2;`

	registerDevice = `INSERT INTO devices (user_id, platform, token_hash, endpoint_arn)
    VALUES ($1, $2, $3, $4)
    ON CONFLICT (user_id, token_hash) DO UPDATE SET platform = EXCLUDED.platform, endpoint_arn = EXCLUDED.endpoint_arn;`

	getDevices = `SELECT user_id, platform, token_hash, endpoint_arn
    FROM devices
    WHERE user_id = $1;`
)

// recordColumnForField maps the wire-level field names accepted by the update
// endpoint to their database columns. Field names outside this map are
// rejected with [ErrUnknownField].
var recordColumnForField = map[string]string{
	"currentIntake": "current_intake",
	"targetIntake":  "target_intake",
	"partnerId":     "partner_id",
}
