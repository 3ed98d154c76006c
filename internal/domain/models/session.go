// Package models contains domain models for the WhatsApp AI gateway.
package models

// BotStatus is the connection status of the WhatsApp client.
type BotStatus string

const (
	BotStatusInitializing  BotStatus = "initializing"
	BotStatusWaitingForQR  BotStatus = "waiting_for_qr"
	BotStatusAuthenticated BotStatus = "authenticated"
	BotStatusReady         BotStatus = "ready"
	BotStatusDisconnected  BotStatus = "disconnected"
)

// String returns the wire form of the status.
func (s BotStatus) String() string {
	return string(s)
}

// LifecycleSignal is emitted by the chat client as its connection progresses.
type LifecycleSignal string

const (
	SignalQRIssued      LifecycleSignal = "qr-issued"
	SignalAuthenticated LifecycleSignal = "authenticated"
	SignalReady         LifecycleSignal = "ready"
	SignalDisconnected  LifecycleSignal = "disconnected"
)

// StatusFor maps a lifecycle signal to the status it produces.
func StatusFor(signal LifecycleSignal) (BotStatus, bool) {
	switch signal {
	case SignalQRIssued:
		return BotStatusWaitingForQR, true
	case SignalAuthenticated:
		return BotStatusAuthenticated, true
	case SignalReady:
		return BotStatusReady, true
	case SignalDisconnected:
		return BotStatusDisconnected, true
	default:
		return "", false
	}
}
