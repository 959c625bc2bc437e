package roster

import (
	"context"
	"time"

	"github.com/Rishu9835/DOORWISE/internal/pkg/instrument"
	"github.com/Rishu9835/DOORWISE/internal/pkg/roster"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Layout maps roster columns to their meaning. Indices are 0-based.
type Layout struct {
	AdminCol          int
	MemberEmailCol    int
	MemberRegNoCol    int
	MemberPasswordCol int
	DoorOTPCol        int
	DoorOTPRow        int
}

type Roster struct {
	client roster.Roster
	layout Layout
	ins    instrument.Instrumentation
}

func NewRoster(client roster.Roster, layout Layout, ins instrument.Instrumentation) *Roster {
	return &Roster{client: client, layout: layout, ins: ins}
}

func (r *Roster) AdminEmails(ctx context.Context) ([]string, error) {
	return r.column(ctx, "AdminEmails", r.layout.AdminCol)
}

func (r *Roster) MemberEmails(ctx context.Context) ([]string, error) {
	return r.column(ctx, "MemberEmails", r.layout.MemberEmailCol)
}

func (r *Roster) MemberRegNos(ctx context.Context) ([]string, error) {
	return r.column(ctx, "MemberRegNos", r.layout.MemberRegNoCol)
}

func (r *Roster) MemberPasswords(ctx context.Context) ([]string, error) {
	return r.column(ctx, "MemberPasswords", r.layout.MemberPasswordCol)
}

func (r *Roster) WriteDoorCode(ctx context.Context, code string) error {
	return r.cell(ctx, "WriteDoorCode", r.layout.DoorOTPRow, r.layout.DoorOTPCol, code)
}

func (r *Roster) WritePassword(ctx context.Context, row int, password string) error {
	return r.cell(ctx, "WritePassword", row, r.layout.MemberPasswordCol, password)
}

func (r *Roster) AppendEntry(ctx context.Context, regNo string, at time.Time) error {
	ctx, span := r.ins.Tracer("access.outbound.roster").Start(ctx, "AppendEntry")
	defer span.End()

	if err := r.client.AppendEntry(ctx, regNo, at); err != nil {
		recordError(span, err)
		return err
	}

	return nil
}

func (r *Roster) column(ctx context.Context, name string, col int) ([]string, error) {
	ctx, span := r.ins.Tracer("access.outbound.roster").Start(ctx, name)
	defer span.End()

	span.SetAttributes(attribute.Int("roster.column", col))

	values, err := r.client.LookupColumn(ctx, col)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("roster.rows", len(values)))

	return values, nil
}

func (r *Roster) cell(ctx context.Context, name string, row, col int, value string) error {
	ctx, span := r.ins.Tracer("access.outbound.roster").Start(ctx, name)
	defer span.End()

	span.SetAttributes(attribute.Int("roster.row", row), attribute.Int("roster.column", col))

	if err := r.client.UpdateCell(ctx, row, col, value); err != nil {
		recordError(span, err)
		return err
	}

	return nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
