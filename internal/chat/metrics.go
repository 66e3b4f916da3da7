package chat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var turns = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "partsbot_chat_turns_total",
	Help: "Completed conversation turns by resulting state.",
}, []string{"state"})
