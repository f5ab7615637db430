package balancer

import (
	"strconv"

	"github.com/segmentio/kafka-go"
)

type UserBalancer struct {
	numPartitions int
}

func NewUserBalancer(numPartitions int) IBaseBalancer {
	return &UserBalancer{numPartitions: numPartitions}
}

// seed事件使用userid做key，同一個用戶的訂單事件要落在同一個partition才能保序
func (u *UserBalancer) Balance(msg kafka.Message, partitions ...int) (partition int) {
	userID, err := strconv.Atoi(string(msg.Key))
	if err != nil {
		return 0
	}

	if len(partitions) != 0 {
		return partitions[userID%len(partitions)]
	}

	return userID % u.numPartitions
}
