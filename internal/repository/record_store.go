package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-analytics-api/internal/models"
)

// RecordStore exposes read-only, filterable access to the attendance, grade, teacher,
// class, student and payment collections.
type RecordStore struct {
	db *sqlx.DB
}

// NewRecordStore instantiates the repository.
func NewRecordStore(db *sqlx.DB) *RecordStore {
	return &RecordStore{db: db}
}

type queryBuilder struct {
	strings.Builder
	args []interface{}
}

func (q *queryBuilder) where(clause string, arg interface{}) {
	q.args = append(q.args, arg)
	q.WriteString(" AND ")
	q.WriteString(clause)
}

// build expands IN clauses and rebinds placeholders for the driver.
func (q *queryBuilder) build(db *sqlx.DB) (string, []interface{}, error) {
	query, args, err := sqlx.In(q.String(), q.args...)
	if err != nil {
		return "", nil, err
	}
	return db.Rebind(query), args, nil
}

func applyDateRange(q *queryBuilder, column string, from, to *time.Time) {
	if from != nil {
		q.where(column+" >= ?", *from)
	}
	if to != nil {
		q.where(column+" <= ?", *to)
	}
}

func applyClasses(q *queryBuilder, column string, filter models.RecordFilter) {
	if filter.ClassID != "" {
		q.where(column+" = ?", filter.ClassID)
	}
	if len(filter.ClassIDs) > 0 {
		q.where(column+" IN (?)", filter.ClassIDs)
	}
}

type attendanceRow struct {
	ID        string         `db:"id"`
	SchoolID  string         `db:"school_id"`
	ClassID   string         `db:"class_id"`
	Date      time.Time      `db:"date"`
	StudentID sql.NullString `db:"student_id"`
	Status    sql.NullString `db:"status"`
}

// FindAttendance returns attendance records with their entries in register order.
func (r *RecordStore) FindAttendance(ctx context.Context, filter models.RecordFilter) ([]models.AttendanceRecord, error) {
	q := &queryBuilder{}
	q.WriteString(`SELECT ar.id, ar.school_id, ar.class_id, ar.date, ae.student_id, ae.status
        FROM attendance_records ar
        LEFT JOIN attendance_entries ae ON ae.record_id = ar.id
        WHERE 1=1`)
	if filter.SchoolID != "" {
		q.where("ar.school_id = ?", filter.SchoolID)
	}
	applyClasses(q, "ar.class_id", filter)
	if filter.StudentID != "" {
		q.where("EXISTS (SELECT 1 FROM attendance_entries x WHERE x.record_id = ar.id AND x.student_id = ?)", filter.StudentID)
	}
	applyDateRange(q, "ar.date", filter.From, filter.To)
	q.WriteString(" ORDER BY ar.date ASC, ar.id ASC, ae.position ASC")

	query, args, err := q.build(r.db)
	if err != nil {
		return nil, fmt.Errorf("build attendance query: %w", err)
	}
	var rows []attendanceRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query attendance records: %w", err)
	}

	records := make([]models.AttendanceRecord, 0)
	index := make(map[string]int)
	for _, row := range rows {
		pos, ok := index[row.ID]
		if !ok {
			pos = len(records)
			index[row.ID] = pos
			records = append(records, models.AttendanceRecord{
				ID:       row.ID,
				SchoolID: row.SchoolID,
				ClassID:  row.ClassID,
				Date:     row.Date,
			})
		}
		if row.StudentID.Valid {
			records[pos].Entries = append(records[pos].Entries, models.AttendanceEntry{
				StudentID: row.StudentID.String,
				Status:    models.AttendanceStatus(row.Status.String),
			})
		}
	}
	return records, nil
}

type gradeRow struct {
	ID         string          `db:"id"`
	SchoolID   string          `db:"school_id"`
	ClassID    string          `db:"class_id"`
	SubjectID  string          `db:"subject_id"`
	TeacherID  string          `db:"teacher_id"`
	ExamType   string          `db:"exam_type"`
	GradedAt   time.Time       `db:"graded_at"`
	StudentID  sql.NullString  `db:"student_id"`
	Percentage sql.NullFloat64 `db:"percentage"`
}

// FindGrades returns grading events with their entries.
func (r *RecordStore) FindGrades(ctx context.Context, filter models.RecordFilter) ([]models.Grade, error) {
	q := &queryBuilder{}
	q.WriteString(`SELECT g.id, g.school_id, g.class_id, g.subject_id, g.teacher_id, g.exam_type, g.graded_at, ge.student_id, ge.percentage
        FROM grades g
        LEFT JOIN grade_entries ge ON ge.grade_id = g.id
        WHERE 1=1`)
	if filter.SchoolID != "" {
		q.where("g.school_id = ?", filter.SchoolID)
	}
	applyClasses(q, "g.class_id", filter)
	if filter.TeacherID != "" {
		q.where("g.teacher_id = ?", filter.TeacherID)
	}
	if filter.SubjectID != "" {
		q.where("g.subject_id = ?", filter.SubjectID)
	}
	if filter.ExamType != "" {
		q.where("g.exam_type = ?", filter.ExamType)
	}
	if filter.StudentID != "" {
		q.where("EXISTS (SELECT 1 FROM grade_entries x WHERE x.grade_id = g.id AND x.student_id = ?)", filter.StudentID)
	}
	applyDateRange(q, "g.graded_at", filter.From, filter.To)
	q.WriteString(" ORDER BY g.graded_at ASC, g.id ASC, ge.student_id ASC")

	query, args, err := q.build(r.db)
	if err != nil {
		return nil, fmt.Errorf("build grade query: %w", err)
	}
	var rows []gradeRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query grades: %w", err)
	}

	grades := make([]models.Grade, 0)
	index := make(map[string]int)
	for _, row := range rows {
		pos, ok := index[row.ID]
		if !ok {
			pos = len(grades)
			index[row.ID] = pos
			grades = append(grades, models.Grade{
				ID:        row.ID,
				SchoolID:  row.SchoolID,
				ClassID:   row.ClassID,
				SubjectID: row.SubjectID,
				TeacherID: row.TeacherID,
				ExamType:  row.ExamType,
				GradedAt:  row.GradedAt,
			})
		}
		if row.StudentID.Valid && row.Percentage.Valid {
			grades[pos].Entries = append(grades[pos].Entries, models.GradeEntry{
				StudentID:  row.StudentID.String,
				Percentage: row.Percentage.Float64,
			})
		}
	}
	return grades, nil
}

// FindPayments returns fee payments, scoped to a school or class through the paying student.
func (r *RecordStore) FindPayments(ctx context.Context, filter models.RecordFilter) ([]models.Payment, error) {
	q := &queryBuilder{}
	q.WriteString(`SELECT p.id, p.student_id, p.fee_structure_id, p.amount_paid, p.payment_date
        FROM payments p
        JOIN students s ON s.id = p.student_id
        WHERE 1=1`)
	if filter.SchoolID != "" {
		q.where("s.school_id = ?", filter.SchoolID)
	}
	applyClasses(q, "s.class_id", filter)
	if filter.StudentID != "" {
		q.where("p.student_id = ?", filter.StudentID)
	}
	applyDateRange(q, "p.payment_date", filter.From, filter.To)
	q.WriteString(" ORDER BY p.payment_date ASC, p.id ASC")

	query, args, err := q.build(r.db)
	if err != nil {
		return nil, fmt.Errorf("build payment query: %w", err)
	}
	var payments []models.Payment
	if err := r.db.SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	return payments, nil
}

// FindTeacher loads a teacher with their assigned classes. sql.ErrNoRows is returned
// when the teacher does not exist.
func (r *RecordStore) FindTeacher(ctx context.Context, id string) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, "SELECT id, school_id FROM teachers WHERE id = $1", id); err != nil {
		return nil, err
	}
	var classes []string
	if err := r.db.SelectContext(ctx, &classes, "SELECT class_id FROM teacher_classes WHERE teacher_id = $1 ORDER BY class_id", id); err != nil {
		return nil, fmt.Errorf("query teacher classes: %w", err)
	}
	teacher.Classes = classes
	if teacher.Classes == nil {
		teacher.Classes = []string{}
	}
	return &teacher, nil
}

// FindClass loads a class by id.
func (r *RecordStore) FindClass(ctx context.Context, id string) (*models.Class, error) {
	var class models.Class
	if err := r.db.GetContext(ctx, &class, "SELECT id, school_id FROM classes WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &class, nil
}

// FindStudent loads a student by id.
func (r *RecordStore) FindStudent(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	if err := r.db.GetContext(ctx, &student, "SELECT id, class_id, school_id FROM students WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &student, nil
}
