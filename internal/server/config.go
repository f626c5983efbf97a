package server

import (
	"time"
)

type Conf struct {
	Addr         string
	TimeoutRead  time.Duration
	TimeoutWrite time.Duration
	TimeoutIdle  time.Duration
	// ChunkDelay paces streamed chunks. Zero sends them as they arrive.
	ChunkDelay time.Duration
	// SystemPrompt is prepended when a request carries no system message.
	SystemPrompt string
}

func ServerConfigs() *Conf {
	return &Conf{
		Addr:         "localhost:9090",
		TimeoutRead:  time.Second * 30,
		TimeoutWrite: time.Second * 120,
		TimeoutIdle:  time.Second * 30,
	}
}
