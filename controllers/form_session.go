package controllers

import (
	"github.com/gin-contrib/sessions"

	"github.com/hodgins-insurance/quoteserver/models"
)

// The form's sub-records persist in the visitor's session between steps and
// across page reloads, under one key per record. The keys double as the
// session schema: their presence drives the rehydration rule.
const (
	sessionKeyAddress  = "quoteAddress"
	sessionKeyProperty = "quotePropertyData"
	sessionKeyContact  = "quoteContactData"
	sessionKeyPremiums = "quotePremiums"
	sessionKeyPending  = "quoteSubmission"
)

func sessionAddress(s sessions.Session) (models.AddressRecord, bool) {
	v, ok := s.Get(sessionKeyAddress).(models.AddressRecord)
	return v, ok
}

func sessionProperty(s sessions.Session) (models.PropertyRecord, bool) {
	v, ok := s.Get(sessionKeyProperty).(models.PropertyRecord)
	return v, ok
}

func sessionContact(s sessions.Session) (models.ContactRecord, bool) {
	v, ok := s.Get(sessionKeyContact).(models.ContactRecord)
	return v, ok
}

func sessionPremiums(s sessions.Session) (models.PremiumEstimates, bool) {
	v, ok := s.Get(sessionKeyPremiums).(models.PremiumEstimates)
	return v, ok
}

func sessionPending(s sessions.Session) (models.PendingSubmission, bool) {
	v, ok := s.Get(sessionKeyPending).(models.PendingSubmission)
	return v, ok
}

// clearFormRecords drops the three step sub-records. Premiums and queued
// pending submissions survive: the success step still needs them.
func clearFormRecords(s sessions.Session) {
	s.Delete(sessionKeyAddress)
	s.Delete(sessionKeyProperty)
	s.Delete(sessionKeyContact)
}

// currentStep applies the rehydration rule: resume at the furthest step with
// saved data. The address step is never re-shown once an address is saved.
func currentStep(s sessions.Session) int {
	if _, ok := sessionAddress(s); !ok {
		return models.StepAddress
	}
	if _, ok := sessionContact(s); ok {
		return models.StepContact
	}
	return models.StepProperty
}
