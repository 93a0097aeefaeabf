package postgres

// certificateColumns is the single source of truth for the certificate column
// order. Every certificate statement selects or returns exactly this list, and
// scanCertificate decodes it; keeping them adjacent means the decode order is
// defined once rather than per call site.
const certificateColumns = `id, name, description, price, duration, create_date, last_update_date`

// Certificate statements. Timestamps travel as bound parameters, never as text
// spliced into the statement.
const (
	queryInsertCertificate = `
		INSERT INTO certificates (name, description, price, duration, create_date, last_update_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	queryCertificateByID = `
		SELECT ` + certificateColumns + `
		FROM certificates
		WHERE id = $1
	`
	queryCertificateByName = `
		SELECT ` + certificateColumns + `
		FROM certificates
		WHERE name = $1
	`
	queryListCertificates = `
		SELECT ` + certificateColumns + `
		FROM certificates
		ORDER BY id
	`
	queryCertificatesByTagID = `
		SELECT c.id, c.name, c.description, c.price, c.duration, c.create_date, c.last_update_date
		FROM certificates c
		JOIN certificate_tags ct ON ct.certificate_id = c.id
		WHERE ct.tag_id = $1
		ORDER BY c.id
	`
	querySearchCertificates = `
		SELECT ` + certificateColumns + `
		FROM certificates
		WHERE name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%'
		ORDER BY id
	`
	queryUpdateCertificate = `
		UPDATE certificates SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			price = COALESCE($4, price),
			duration = COALESCE($5, duration),
			last_update_date = $6
		WHERE id = $1
		RETURNING ` + certificateColumns + `
	`
	queryDeleteCertificate = `DELETE FROM certificates WHERE id = $1`
)

// Tag and join-table statements.
const (
	queryInsertTag = `INSERT INTO tags (name) VALUES ($1) RETURNING id`
	queryTagByID   = `SELECT id, name FROM tags WHERE id = $1`
	queryTagByName = `SELECT id, name FROM tags WHERE name = $1`
	queryDeleteTag = `DELETE FROM tags WHERE id = $1`
	queryTagIDsIn  = `SELECT id FROM tags WHERE id = ANY($1)`

	queryTagIDsByCertificate = `
		SELECT tag_id
		FROM certificate_tags
		WHERE certificate_id = $1
		ORDER BY tag_id
	`
	queryTagsByCertificate = `
		SELECT t.id, t.name
		FROM tags t
		JOIN certificate_tags ct ON ct.tag_id = t.id
		WHERE ct.certificate_id = $1
		ORDER BY t.id
	`
	queryInsertCertificateTag = `
		INSERT INTO certificate_tags (certificate_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT (certificate_id, tag_id) DO NOTHING
	`
	queryDeleteLinksByCertificate = `DELETE FROM certificate_tags WHERE certificate_id = $1`
	queryDeleteLinksByTag         = `DELETE FROM certificate_tags WHERE tag_id = $1`
)
