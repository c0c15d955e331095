package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usersdomain "github.com/namelime/namelime-backend/internal/users/domain"
)

const testSecret = "whsec_test"

type fakeUpgrader struct {
	uid      string
	interval usersdomain.PlanInterval
	expiry   time.Time
	calls    int
	err      error
}

func (f *fakeUpgrader) ApplyUpgrade(_ context.Context, uid string, interval usersdomain.PlanInterval, expiresAt time.Time) error {
	f.calls++
	f.uid = uid
	f.interval = interval
	f.expiry = expiresAt
	return f.err
}

func sign(t *testing.T, payload []byte) string {
	t.Helper()
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(testSecret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func checkoutCompletedPayload(interval string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_1",
		"object": "event",
		"api_version": "2025-03-31.basil",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_1",
				"object": "checkout.session",
				"metadata": {"userId": "user-1", "interval": %q}
			}
		}
	}`, interval))
}

var webhookNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func newTestWebhookService(up *fakeUpgrader) *WebhookService {
	s := NewWebhookService(testSecret, up, zerolog.Nop())
	s.now = func() time.Time { return webhookNow }
	return s
}

func TestHandleEventRejectsBadSignature(t *testing.T) {
	up := &fakeUpgrader{}
	s := newTestWebhookService(up)

	err := s.HandleEvent(context.Background(), checkoutCompletedPayload("month"), "t=1,v1=deadbeef")

	assert.Error(t, err)
	assert.Zero(t, up.calls)
}

func TestHandleEventAppliesMonthlyUpgrade(t *testing.T) {
	up := &fakeUpgrader{}
	s := newTestWebhookService(up)

	payload := checkoutCompletedPayload("month")
	err := s.HandleEvent(context.Background(), payload, sign(t, payload))

	require.NoError(t, err)
	assert.Equal(t, 1, up.calls)
	assert.Equal(t, "user-1", up.uid)
	assert.Equal(t, usersdomain.IntervalMonthly, up.interval)
	// One month plus the one-day renewal buffer.
	assert.Equal(t, webhookNow.AddDate(0, 1, 1), up.expiry)
}

func TestHandleEventAppliesYearlyUpgrade(t *testing.T) {
	up := &fakeUpgrader{}
	s := newTestWebhookService(up)

	payload := checkoutCompletedPayload("year")
	err := s.HandleEvent(context.Background(), payload, sign(t, payload))

	require.NoError(t, err)
	assert.Equal(t, usersdomain.IntervalYearly, up.interval)
	assert.Equal(t, webhookNow.AddDate(1, 0, 1), up.expiry)
}

func TestHandleEventIgnoresUnknownEventTypes(t *testing.T) {
	up := &fakeUpgrader{}
	s := newTestWebhookService(up)

	payload := []byte(`{"id":"evt_2","object":"event","api_version":"2025-03-31.basil","type":"invoice.paid","data":{"object":{}}}`)
	err := s.HandleEvent(context.Background(), payload, sign(t, payload))

	require.NoError(t, err)
	assert.Zero(t, up.calls)
}

func TestHandleEventMissingUserIDIsAcknowledged(t *testing.T) {
	up := &fakeUpgrader{}
	s := newTestWebhookService(up)

	payload := []byte(`{
		"id": "evt_3",
		"object": "event",
		"api_version": "2025-03-31.basil",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_test_2", "object": "checkout.session", "metadata": {}}}
	}`)
	err := s.HandleEvent(context.Background(), payload, sign(t, payload))

	require.NoError(t, err)
	assert.Zero(t, up.calls)
}
