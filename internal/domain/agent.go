package domain

import "time"

// AgentStatus represents the lifecycle state of an agent.
type AgentStatus string

const (
	StatusStopped AgentStatus = "STOPPED"
	StatusActive  AgentStatus = "ACTIVE"
	// StatusPaused is reserved: no lifecycle operation produces it yet.
	StatusPaused AgentStatus = "PAUSED"
)

// Agent is an autonomous decision-making unit bound to exactly one wallet.
// Instances returned by the controller are snapshots; mutating them has no
// effect on the live agent.
type Agent struct {
	ID              string
	Name            string
	WalletPublicKey string
	Strategy        StrategyConfig
	Status          AgentStatus
	CreatedAt       time.Time
	Activities      []Activity // oldest first
}

// ActivityResult marks whether the logged step succeeded.
type ActivityResult string

const (
	ResultSuccess ActivityResult = "SUCCESS"
	ResultFailure ActivityResult = "FAILURE"
)

// Activity is one immutable entry in an agent's audit trail.
type Activity struct {
	Timestamp time.Time
	Action    string // "created", "started", "stopped", "buy", "sell", "wait"
	Reason    string
	Signature string // set only for settled trades
	Result    ActivityResult
}
