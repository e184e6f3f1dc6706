package log

import "testing"

// These exist mainly to document the contract: New and Null must
// never return nil and must satisfy Logger without panicking.
func TestNewSatisfiesLogger(t *testing.T) {
	var l Logger = New()
	l.Infof("hello %s", "world")
	l.Debugf("x=%d", 1)
	l.Errorf("boom")
}

func TestNullDiscardsSilently(t *testing.T) {
	var l Logger = Null()
	l.Infof("hello %s", "world")
	l.Debugf("x=%d", 1)
	l.Errorf("boom")
}
