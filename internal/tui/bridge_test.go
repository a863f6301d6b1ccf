package tui

import (
	"testing"

	"github.com/agbru/fetchview/internal/fetch"
)

func TestProgramRef_Send_NilProgram(t *testing.T) {
	ref := &programRef{} // program is nil
	if ref.Send(OutcomeMsg{}) {
		t.Error("Send should report false without a program")
	}
}

func TestProgramRef_Sink_NilProgramDoesNotPanic(t *testing.T) {
	ref := &programRef{}
	sink := ref.Sink()
	sink(fetch.Outcome{Kind: fetch.Success, Response: &fetch.Response{Body: []byte("x")}})
}

func TestProgramRef_SetProgramConcurrent(t *testing.T) {
	ref := &programRef{}
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			ref.Send(OutcomeMsg{})
		}
		close(done)
	}()
	for i := 0; i < 100; i++ {
		ref.SetProgram(nil)
	}
	<-done
}
