package metrics

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	studentsCreated    metric.Int64Counter
	studentsViewed     metric.Int64Counter
	studentsListViewed metric.Int64Counter
	gpaUpdated         metric.Int64Counter
	statusChanged      metric.Int64Counter
	studentsDeleted    metric.Int64Counter
}

func New(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.studentsCreated, err = meter.Int64Counter(
		"student_records.students.created",
		metric.WithDescription("Total number of students created"),
		metric.WithUnit("{student}"),
	)
	if err != nil {
		return nil, err
	}

	m.studentsViewed, err = meter.Int64Counter(
		"student_records.students.viewed",
		metric.WithDescription("Total number of students viewed"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.studentsListViewed, err = meter.Int64Counter(
		"student_records.students.list_viewed",
		metric.WithDescription("Total number of times the students list was viewed"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.gpaUpdated, err = meter.Int64Counter(
		"student_records.students.gpa_updated",
		metric.WithDescription("Total number of GPA updates"),
		metric.WithUnit("{update}"),
	)
	if err != nil {
		return nil, err
	}

	m.statusChanged, err = meter.Int64Counter(
		"student_records.students.status_changed",
		metric.WithDescription("Total number of status transitions"),
		metric.WithUnit("{update}"),
	)
	if err != nil {
		return nil, err
	}

	m.studentsDeleted, err = meter.Int64Counter(
		"student_records.students.deleted",
		metric.WithDescription("Total number of students deleted"),
		metric.WithUnit("{student}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) RecordStudentCreated(ctx context.Context) {
	if m != nil && m.studentsCreated != nil {
		m.studentsCreated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordStudentViewed(ctx context.Context) {
	if m != nil && m.studentsViewed != nil {
		m.studentsViewed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordStudentsListViewed(ctx context.Context) {
	if m != nil && m.studentsListViewed != nil {
		m.studentsListViewed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordGPAUpdated(ctx context.Context) {
	if m != nil && m.gpaUpdated != nil {
		m.gpaUpdated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordStatusChanged(ctx context.Context) {
	if m != nil && m.statusChanged != nil {
		m.statusChanged.Add(ctx, 1)
	}
}

func (m *Metrics) RecordStudentDeleted(ctx context.Context) {
	if m != nil && m.studentsDeleted != nil {
		m.studentsDeleted.Add(ctx, 1)
	}
}

// NewMock creates a no-op Metrics instance for testing
// The returned Metrics will safely ignore all Record* calls
func NewMock() *Metrics {
	return &Metrics{}
}
