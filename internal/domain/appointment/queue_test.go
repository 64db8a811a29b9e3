package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BelezaApps/salon-agenda/internal/models"
)

func TestQueuePositionEarliestIsFirst(t *testing.T) {
	a := pendingAt(1, 540, 30, nil)
	b := pendingAt(2, 600, 30, nil)
	c := pendingAt(3, 660, 30, nil)

	siblings := []models.Appointment{b, a, c}

	pos, total := QueuePosition(&a, siblings)
	assert.Equal(t, 1, pos)
	assert.Equal(t, 3, total)

	pos, _ = QueuePosition(&b, siblings)
	assert.Equal(t, 2, pos)

	pos, _ = QueuePosition(&c, siblings)
	assert.Equal(t, 3, pos)
}

func TestQueuePositionIgnoresNonPending(t *testing.T) {
	a := pendingAt(1, 540, 30, nil)
	a.Status = string(StatusCompleted)

	b := pendingAt(2, 600, 30, nil)

	pos, total := QueuePosition(&b, []models.Appointment{a, b})
	assert.Equal(t, 1, pos)
	assert.Equal(t, 1, total)
}

func TestQueuePositionAlone(t *testing.T) {
	a := pendingAt(1, 540, 30, nil)

	pos, total := QueuePosition(&a, []models.Appointment{a})
	assert.Equal(t, 1, pos)
	assert.Equal(t, 1, total)
}

func TestQueuePositionTiesDontDoubleCount(t *testing.T) {
	// dois agendamentos no mesmo minuto: nenhum conta como "antes" do
	// outro, ambos ficam na posição 1
	a := pendingAt(1, 600, 30, uintPtr(1))
	b := pendingAt(2, 600, 30, uintPtr(2))

	siblings := []models.Appointment{a, b}

	posA, _ := QueuePosition(&a, siblings)
	posB, _ := QueuePosition(&b, siblings)

	assert.Equal(t, 1, posA)
	assert.Equal(t, 1, posB)
}
