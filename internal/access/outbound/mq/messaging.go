package mq

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/Rishu9835/DOORWISE/internal/access/usecase"
	"github.com/Rishu9835/DOORWISE/internal/pkg/instrument"
	"github.com/Rishu9835/DOORWISE/internal/pkg/messaging"
	"github.com/Rishu9835/DOORWISE/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Publisher
	prefix string
	ins    instrument.Instrumentation
}

// NewMessaging publishes to destinations prefixed with prefix and a dot.
// An empty prefix publishes to the bare event names.
func NewMessaging(client messaging.Publisher, prefix string, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, prefix: prefix, ins: ins}
}

func (m *Messaging) PublishDoorIssued(ctx context.Context, msg usecase.DoorIssuedEvent) error {
	return m.publish(ctx, "PublishDoorIssued", event.DoorIssuedDestination, strconv.FormatInt(msg.OTPID, 10), event.DoorIssuedMessage{
		OTPID:      msg.OTPID,
		IssuedBy:   msg.IssuedBy,
		ExpiresAt:  msg.ExpiresAt,
		Recipients: msg.Recipients,
	})
}

func (m *Messaging) PublishDoorUnlocked(ctx context.Context, msg usecase.DoorUnlockedEvent) error {
	return m.publish(ctx, "PublishDoorUnlocked", event.DoorUnlockedDestination, strconv.FormatInt(msg.OTPID, 10), event.DoorUnlockedMessage{
		OTPID:      msg.OTPID,
		UnlockedAt: msg.UnlockedAt,
	})
}

func (m *Messaging) PublishEntryLogged(ctx context.Context, msg usecase.EntryLoggedEvent) error {
	return m.publish(ctx, "PublishEntryLogged", event.EntryLoggedDestination, msg.RegNo, event.EntryLoggedMessage{
		RegNo:     msg.RegNo,
		EnteredAt: msg.EnteredAt,
	})
}

func (m *Messaging) PublishCredentialsRotated(ctx context.Context, msg usecase.CredentialsRotatedEvent) error {
	return m.publish(ctx, "PublishCredentialsRotated", event.CredentialsRotatedDestination, msg.Trigger, event.CredentialsRotatedMessage{
		Trigger:   msg.Trigger,
		Total:     msg.Report.Total,
		Rotated:   msg.Report.Rotated,
		Skipped:   msg.Report.Skipped,
		Failed:    msg.Report.Failed,
		RotatedAt: msg.RotatedAt,
	})
}

func (m *Messaging) publish(ctx context.Context, name, destination, key string, payload any) error {
	ctx, span := m.ins.Tracer("access.outbound.mq").Start(ctx, name)
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, m.destination(destination), messaging.Message{
		Key:     []byte(key),
		Body:    body,
		Headers: map[string]string{keyOfCorrelationID: cID},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) destination(name string) string {
	if m.prefix == "" {
		return name
	}
	return m.prefix + "." + name
}
