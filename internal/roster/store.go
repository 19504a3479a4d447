package roster

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dawam/internal/extract"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

// ReplaceAll swaps the stored roster for the uploaded one in a single
// transaction. Roster imports are whole-file replacements, not merges.
func (s *Store) ReplaceAll(ctx context.Context, profiles []Profile) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "DELETE FROM employees"); err != nil {
		return fmt.Errorf("clear roster: %w", err)
	}

	for _, p := range profiles {
		var satStart *string
		if p.SaturdayStart != nil {
			v := p.SaturdayStart.String()
			satStart = &v
		}
		if _, err := tx.Exec(ctx, `
      INSERT INTO employees (id, employee_id, employee_no, name_ar, name_en, job_title, nationality, department, attendance_rule, friday_work, saturday_work, saturday_start, saturday_grace)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
      ON CONFLICT (employee_id) DO UPDATE SET
        employee_no = EXCLUDED.employee_no,
        name_ar = EXCLUDED.name_ar,
        name_en = EXCLUDED.name_en,
        job_title = EXCLUDED.job_title,
        nationality = EXCLUDED.nationality,
        department = EXCLUDED.department,
        attendance_rule = EXCLUDED.attendance_rule,
        friday_work = EXCLUDED.friday_work,
        saturday_work = EXCLUDED.saturday_work,
        saturday_start = EXCLUDED.saturday_start,
        saturday_grace = EXCLUDED.saturday_grace
    `, uuid.NewString(), p.EmployeeID, p.EmployeeNo, p.NameAr, p.NameEn, p.JobTitle, p.Nationality, p.Department, p.Rule.Label(), p.FridayWork, p.SaturdayWork, satStart, p.SaturdayGrace); err != nil {
			return fmt.Errorf("insert employee %s: %w", p.EmployeeID, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) List(ctx context.Context) ([]Profile, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT employee_id, employee_no, name_ar, name_en, job_title, nationality, department, attendance_rule, friday_work, saturday_work, saturday_start, saturday_grace
    FROM employees
    ORDER BY employee_id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		var rule string
		var satStart *string
		if err := rows.Scan(&p.EmployeeID, &p.EmployeeNo, &p.NameAr, &p.NameEn, &p.JobTitle, &p.Nationality, &p.Department, &rule, &p.FridayWork, &p.SaturdayWork, &satStart, &p.SaturdayGrace); err != nil {
			return nil, err
		}
		p.Rule = ParseRule(rule)
		if satStart != nil {
			if clock, ok := extract.ParseClock(*satStart); ok {
				c := clock
				p.SaturdayStart = &c
			}
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (s *Store) ListOverrides(ctx context.Context) ([]Override, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT employee_id, friday_work, saturday_work, saturday_start, saturday_grace
    FROM schedule_overrides
    ORDER BY employee_id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overrides []Override
	for rows.Next() {
		override, err := scanOverride(rows)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, override)
	}
	return overrides, rows.Err()
}

func (s *Store) GetOverride(ctx context.Context, employeeID string) (Override, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT employee_id, friday_work, saturday_work, saturday_start, saturday_grace
    FROM schedule_overrides
    WHERE employee_id = $1
  `, NormalizeID(employeeID))
	return scanOverride(row)
}

func (s *Store) UpsertOverride(ctx context.Context, override Override) error {
	var satStart *string
	if override.SaturdayStart != nil {
		v := override.SaturdayStart.String()
		satStart = &v
	}
	_, err := s.DB.Exec(ctx, `
    INSERT INTO schedule_overrides (employee_id, friday_work, saturday_work, saturday_start, saturday_grace)
    VALUES ($1,$2,$3,$4,$5)
    ON CONFLICT (employee_id) DO UPDATE SET
      friday_work = EXCLUDED.friday_work,
      saturday_work = EXCLUDED.saturday_work,
      saturday_start = EXCLUDED.saturday_start,
      saturday_grace = EXCLUDED.saturday_grace
  `, NormalizeID(override.EmployeeID), override.FridayWork, override.SaturdayWork, satStart, override.SaturdayGrace)
	return err
}

func (s *Store) DeleteOverride(ctx context.Context, employeeID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM schedule_overrides WHERE employee_id = $1", NormalizeID(employeeID))
	return err
}

func scanOverride(row pgx.Row) (Override, error) {
	var override Override
	var satStart *string
	if err := row.Scan(&override.EmployeeID, &override.FridayWork, &override.SaturdayWork, &satStart, &override.SaturdayGrace); err != nil {
		return Override{}, err
	}
	if satStart != nil {
		if clock, ok := extract.ParseClock(*satStart); ok {
			c := clock
			override.SaturdayStart = &c
		}
	}
	return override, nil
}
