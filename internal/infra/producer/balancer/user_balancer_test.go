package balancer

import (
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

func TestUserBalancer_SameUserSamePartition(t *testing.T) {
	b := NewUserBalancer(6)

	msg := kafka.Message{Key: []byte("42")}
	first := b.Balance(msg, 0, 1, 2, 3, 4, 5)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, b.Balance(msg, 0, 1, 2, 3, 4, 5))
	}
	require.Equal(t, 42%6, first)
}

func TestUserBalancer_NoPartitionListFallsBackToConfigured(t *testing.T) {
	b := NewUserBalancer(4)

	require.Equal(t, 7%4, b.Balance(kafka.Message{Key: []byte("7")}))
}

// key不是數字時固定落在partition 0，不能panic
func TestUserBalancer_NonNumericKey(t *testing.T) {
	b := NewUserBalancer(6)

	require.Equal(t, 0, b.Balance(kafka.Message{Key: []byte("seed-run")}, 0, 1, 2))
}
