package tui

import (
	"github.com/MKhiriev/influence-roster/internal/adapter"
	"github.com/MKhiriev/influence-roster/models"
)

type profilesLoadedMsg struct {
	profiles []models.PlayerProfile
	err      error
}

type versionLoadedMsg struct {
	version string
	err     error
}

type subscribedMsg struct {
	sub *adapter.Subscription
}

type rosterPushMsg struct {
	msg models.PlayerRosterMessage
	sub *adapter.Subscription
}

type subscriptionEndedMsg struct {
	err error
}

type reconnectMsg struct{}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
