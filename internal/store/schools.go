// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

const schoolColumns = `id, name, address, district, taluk, state, student_count, teacher_count,
	latitude, longitude, project_code, status, total_cost, amount_raised, work_start_date,
	expected_completion_date, actual_completion_date, principal_quote, need_assessment,
	ngo_partner_id, created_at, updated_at`

func scanSchool(s scanner) (School, error) {
	var i School
	err := s.Scan(
		&i.ID,
		&i.Name,
		&i.Address,
		&i.District,
		&i.Taluk,
		&i.State,
		&i.StudentCount,
		&i.TeacherCount,
		&i.Latitude,
		&i.Longitude,
		&i.ProjectCode,
		&i.Status,
		&i.TotalCost,
		&i.AmountRaised,
		&i.WorkStartDate,
		&i.ExpectedCompletionDate,
		&i.ActualCompletionDate,
		&i.PrincipalQuote,
		&i.NeedAssessment,
		&i.NgoPartnerID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

// CreateSchoolParams holds the fields of a new school.
type CreateSchoolParams struct {
	Name                   string
	Address                string
	District               string
	Taluk                  string
	State                  string
	StudentCount           int64
	TeacherCount           int64
	Latitude               float64
	Longitude              float64
	ProjectCode            string
	Status                 string
	TotalCost              float64
	AmountRaised           float64
	WorkStartDate          sql.NullTime
	ExpectedCompletionDate sql.NullTime
	ActualCompletionDate   sql.NullTime
	PrincipalQuote         sql.NullString
	NeedAssessment         sql.NullString
	NgoPartnerID           sql.NullString
	CreatedAt              time.Time
}

const createSchool = `INSERT INTO schools (` + schoolColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + schoolColumns

// CreateSchool inserts a school.
func (q *Queries) CreateSchool(ctx context.Context, arg CreateSchoolParams) (School, error) {
	createdAt := arg.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	row := q.db.QueryRowContext(ctx, createSchool,
		newID(),
		arg.Name,
		arg.Address,
		arg.District,
		arg.Taluk,
		arg.State,
		arg.StudentCount,
		arg.TeacherCount,
		arg.Latitude,
		arg.Longitude,
		arg.ProjectCode,
		arg.Status,
		arg.TotalCost,
		arg.AmountRaised,
		arg.WorkStartDate,
		arg.ExpectedCompletionDate,
		arg.ActualCompletionDate,
		arg.PrincipalQuote,
		arg.NeedAssessment,
		arg.NgoPartnerID,
		createdAt,
		createdAt,
	)
	return scanSchool(row)
}

const getSchoolByProjectCode = `SELECT ` + schoolColumns + ` FROM schools WHERE project_code = ?`

// GetSchoolByProjectCode returns sql.ErrNoRows when no school has the code.
func (q *Queries) GetSchoolByProjectCode(ctx context.Context, projectCode string) (School, error) {
	return scanSchool(q.db.QueryRowContext(ctx, getSchoolByProjectCode, projectCode))
}

const getSchoolByID = `SELECT ` + schoolColumns + ` FROM schools WHERE id = ?`

// GetSchoolByID returns sql.ErrNoRows when the school does not exist.
func (q *Queries) GetSchoolByID(ctx context.Context, id string) (School, error) {
	return scanSchool(q.db.QueryRowContext(ctx, getSchoolByID, id))
}

const countSchools = `SELECT COUNT(*) FROM schools`

// CountSchools returns the number of schools.
func (q *Queries) CountSchools(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countSchools).Scan(&n)
	return n, err
}

const listSchools = `SELECT ` + schoolColumns + ` FROM schools ORDER BY created_at DESC`

// ListSchools returns every school, newest first.
func (q *Queries) ListSchools(ctx context.Context) ([]School, error) {
	return queryAll(ctx, q.db, scanSchool, listSchools)
}

const listSchoolsByStatus = `SELECT ` + schoolColumns + ` FROM schools WHERE status = ? ORDER BY created_at DESC`

// ListSchoolsByStatus returns schools with the given status, newest first.
func (q *Queries) ListSchoolsByStatus(ctx context.Context, status string) ([]School, error) {
	return queryAll(ctx, q.db, scanSchool, listSchoolsByStatus, status)
}

// ListSchoolsByStatuses returns schools in any of the statuses ordered by name.
func (q *Queries) ListSchoolsByStatuses(ctx context.Context, statuses []string) ([]School, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(statuses)), ",")
	query := `SELECT ` + schoolColumns + ` FROM schools WHERE status IN (` + placeholders + `) ORDER BY name ASC`
	args := make([]any, len(statuses))
	for i, s := range statuses {
		args[i] = s
	}
	return queryAll(ctx, q.db, scanSchool, query, args...)
}

const listSchoolsForMap = `SELECT ` + schoolColumns + ` FROM schools ORDER BY district ASC, name ASC`

// ListSchoolsForMap returns every school ordered by district.
func (q *Queries) ListSchoolsForMap(ctx context.Context) ([]School, error) {
	return queryAll(ctx, q.db, scanSchool, listSchoolsForMap)
}

const listRecentlyCompletedSchools = `SELECT ` + schoolColumns + ` FROM schools
WHERE status = 'completed'
ORDER BY actual_completion_date IS NULL, actual_completion_date DESC
LIMIT ?`

// ListRecentlyCompletedSchools returns the latest completed schools.
func (q *Queries) ListRecentlyCompletedSchools(ctx context.Context, limit int64) ([]School, error) {
	return queryAll(ctx, q.db, scanSchool, listRecentlyCompletedSchools, limit)
}

const addSchoolAmountRaised = `UPDATE schools SET amount_raised = amount_raised + ?, updated_at = ? WHERE id = ?`

// AddSchoolAmountRaisedParams identifies the school and the pledged amount.
type AddSchoolAmountRaisedParams struct {
	Amount    float64
	UpdatedAt time.Time
	ID        string
}

// AddSchoolAmountRaised increments a school's raised total.
func (q *Queries) AddSchoolAmountRaised(ctx context.Context, arg AddSchoolAmountRaisedParams) error {
	_, err := q.db.ExecContext(ctx, addSchoolAmountRaised, arg.Amount, arg.UpdatedAt, arg.ID)
	return err
}

const costItemColumns = `id, school_id, category, description, amount, created_at`

func scanCostItem(s scanner) (CostItem, error) {
	var i CostItem
	err := s.Scan(&i.ID, &i.SchoolID, &i.Category, &i.Description, &i.Amount, &i.CreatedAt)
	return i, err
}

// CreateCostItemParams holds the fields of a new cost item.
type CreateCostItemParams struct {
	SchoolID    string
	Category    string
	Description sql.NullString
	Amount      float64
}

const createCostItem = `INSERT INTO cost_items (` + costItemColumns + `) VALUES (?, ?, ?, ?, ?, ?)
RETURNING ` + costItemColumns

// CreateCostItem inserts a cost item.
func (q *Queries) CreateCostItem(ctx context.Context, arg CreateCostItemParams) (CostItem, error) {
	row := q.db.QueryRowContext(ctx, createCostItem,
		newID(), arg.SchoolID, arg.Category, arg.Description, arg.Amount, time.Now().UTC())
	return scanCostItem(row)
}

const listCostItemsBySchool = `SELECT ` + costItemColumns + ` FROM cost_items WHERE school_id = ? ORDER BY amount DESC`

// ListCostItemsBySchool returns a school's budget lines, largest first.
func (q *Queries) ListCostItemsBySchool(ctx context.Context, schoolID string) ([]CostItem, error) {
	return queryAll(ctx, q.db, scanCostItem, listCostItemsBySchool, schoolID)
}

const photoColumns = `id, school_id, photo_url, caption, photo_type, uploaded_at`

func scanSchoolPhoto(s scanner) (SchoolPhoto, error) {
	var i SchoolPhoto
	err := s.Scan(&i.ID, &i.SchoolID, &i.PhotoURL, &i.Caption, &i.PhotoType, &i.UploadedAt)
	return i, err
}

// CreateSchoolPhotoParams holds the fields of a new photo.
type CreateSchoolPhotoParams struct {
	SchoolID  string
	PhotoURL  string
	Caption   sql.NullString
	PhotoType string
}

const createSchoolPhoto = `INSERT INTO school_photos (` + photoColumns + `) VALUES (?, ?, ?, ?, ?, ?)
RETURNING ` + photoColumns

// CreateSchoolPhoto inserts a photo.
func (q *Queries) CreateSchoolPhoto(ctx context.Context, arg CreateSchoolPhotoParams) (SchoolPhoto, error) {
	row := q.db.QueryRowContext(ctx, createSchoolPhoto,
		newID(), arg.SchoolID, arg.PhotoURL, arg.Caption, arg.PhotoType, time.Now().UTC())
	return scanSchoolPhoto(row)
}

const listPhotosBySchool = `SELECT ` + photoColumns + ` FROM school_photos WHERE school_id = ? ORDER BY uploaded_at ASC`

// ListPhotosBySchool returns a school's photos in upload order.
func (q *Queries) ListPhotosBySchool(ctx context.Context, schoolID string) ([]SchoolPhoto, error) {
	return queryAll(ctx, q.db, scanSchoolPhoto, listPhotosBySchool, schoolID)
}
