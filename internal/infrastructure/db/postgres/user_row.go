package postgres

import "time"

type userRow struct {
	ID           string
	Name         string
	Email        string
	Role         string
	PasswordHash string
	AvatarURL    string
	Status       string
	Version      int64
	UpdatedAt    time.Time
}

const userColumns = `id, name, email, role, password_hash, avatar_url, status, version, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (userRow, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID,
		&ur.Name,
		&ur.Email,
		&ur.Role,
		&ur.PasswordHash,
		&ur.AvatarURL,
		&ur.Status,
		&ur.Version,
		&ur.UpdatedAt,
	)
	return ur, err
}
