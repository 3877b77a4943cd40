package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/olanest/olanest/pkg/models"
)

const profileColumns = `contractor_id, name, email, city, province, service_categories, bio,
	profile_picture_url, license_number, is_license_approved, phone, website,
	social_links, language_preferences, availability, updated`

func (r *SQLiteRepo) SaveProfile(ctx context.Context, p *models.ContractorProfile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}

	links, err := json.Marshal(p.SocialLinks)
	if err != nil {
		return fmt.Errorf("marshal social links: %w", err)
	}

	_, err = r.conn.Exec(ctx, `INSERT INTO contractor_profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(contractor_id) DO UPDATE SET
			name=excluded.name, email=excluded.email, city=excluded.city,
			province=excluded.province, service_categories=excluded.service_categories,
			bio=excluded.bio, profile_picture_url=excluded.profile_picture_url,
			license_number=excluded.license_number, is_license_approved=excluded.is_license_approved,
			phone=excluded.phone, website=excluded.website, social_links=excluded.social_links,
			language_preferences=excluded.language_preferences, availability=excluded.availability,
			updated=excluded.updated`,
		p.ID, p.Name, p.Email, p.City, p.Province,
		models.MarshalStrings(p.ServiceCategories), p.Bio, p.ProfilePictureURL,
		p.LicenseNumber, boolToInt(p.IsLicenseApproved), p.Phone, p.Website,
		string(links), models.MarshalStrings(p.LanguagePreferences), p.Availability, p.Updated)
	return err
}

func (r *SQLiteRepo) ProfileByID(ctx context.Context, id string) (*models.ContractorProfile, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM contractor_profiles WHERE contractor_id = ?`, id)

	p, err := scanProfile(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return p, nil
}

// ListProfiles matches province and city with case-insensitive trimmed
// equality in SQL; category membership is checked against the decoded
// JSON array. Insertion order is preserved via rowid.
func (r *SQLiteRepo) ListProfiles(ctx context.Context, f models.ProfileFilter) ([]models.ContractorProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM contractor_profiles`
	var conds []string
	var args []any
	if f.Province != "" {
		conds = append(conds, `LOWER(TRIM(province)) = ?`)
		args = append(args, normalize(f.Province))
	}
	if f.City != "" {
		conds = append(conds, `LOWER(TRIM(city)) = ?`)
		args = append(args, normalize(f.City))
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY rowid`

	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	category := normalize(f.Category)
	var out []models.ContractorProfile
	for rows.Next() {
		p, err := scanProfile(rows.Scan)
		if err != nil {
			return nil, err
		}
		if category != "" && !hasCategory(p.ServiceCategories, category) {
			continue
		}
		out = append(out, *p)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) SetLicenseApproved(ctx context.Context, contractorID string, approved bool) error {
	res, err := r.conn.Exec(ctx,
		`UPDATE contractor_profiles SET is_license_approved = ? WHERE contractor_id = ?`,
		boolToInt(approved), contractorID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func scanProfile(scan func(...any) error) (*models.ContractorProfile, error) {
	var p models.ContractorProfile
	var categories, links, languages string
	var approved int
	if err := scan(&p.ID, &p.Name, &p.Email, &p.City, &p.Province, &categories, &p.Bio,
		&p.ProfilePictureURL, &p.LicenseNumber, &approved, &p.Phone, &p.Website,
		&links, &languages, &p.Availability, &p.Updated); err != nil {
		return nil, err
	}

	p.ServiceCategories = models.UnmarshalStrings(categories)
	p.LanguagePreferences = models.UnmarshalStrings(languages)
	p.IsLicenseApproved = approved != 0
	if links != "" {
		// a malformed blob leaves the links empty rather than failing the read
		_ = json.Unmarshal([]byte(links), &p.SocialLinks)
	}

	return &p, nil
}

func hasCategory(categories []string, normalized string) bool {
	for _, c := range categories {
		if normalize(c) == normalized {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
