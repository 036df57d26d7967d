package mock

import (
	"time"

	honor "github.com/honorguild/honorbot/internal/domain/honor"
)

var (
	Alice = "100000000000000001"
	Bob   = "100000000000000002"
	Carol = "100000000000000003"
)

var Accounts = []honor.Account{
	{UserID: Alice, Balance: 144000},
	{UserID: Bob, Balance: -80},
	{UserID: Carol, Balance: 0},
}

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// AliceEntries replays to Alice's stored balance only with step-wise clamping.
var AliceEntries = []honor.Entry{
	{ID: 1, UserID: Alice, Delta: 100000, Reason: honor.ReasonAdjustment, ActorID: &Carol, Timestamp: epoch},
	{ID: 2, UserID: Alice, Delta: 100000, Reason: honor.ReasonAdjustment, ActorID: &Carol, Timestamp: epoch.Add(time.Minute)},
}

// BobEntries sum to -100 but Bob's stored balance is -80.
var BobEntries = []honor.Entry{
	{ID: 3, UserID: Bob, Delta: 20, Reason: honor.ReasonThanks, ActorID: &Alice, Timestamp: epoch},
	{ID: 4, UserID: Bob, Delta: -120, Reason: honor.ReasonProfanity, Note: "heck", Timestamp: epoch.Add(time.Hour)},
}
