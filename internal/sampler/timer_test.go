package sampler

import (
	"testing"
	"time"
)

func TestWait_ElapsesWithoutKill(t *testing.T) {
	timer := NewTimer()

	start := time.Now()
	res := timer.Wait(20*time.Millisecond, nil)
	if res != WaitElapsed {
		t.Fatalf("Wait() = %v, want WaitElapsed", res)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("Wait() returned after %v, want >= 20ms", elapsed)
	}
}

func TestKill_UnblocksWaitImmediately(t *testing.T) {
	timer := NewTimer()

	resCh := make(chan WaitResult, 1)
	start := time.Now()
	go func() {
		resCh <- timer.Wait(time.Minute, nil)
	}()

	time.Sleep(10 * time.Millisecond)
	timer.Kill()

	select {
	case res := <-resCh:
		if res != WaitKilled {
			t.Fatalf("Wait() = %v, want WaitKilled", res)
		}
		if elapsed := time.Since(start); elapsed > 5*time.Second {
			t.Fatalf("Wait() took %v to unblock, want immediate", elapsed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Wait() did not unblock after Kill()")
	}
}

func TestWait_AfterKillReturnsImmediately(t *testing.T) {
	timer := NewTimer()
	timer.Kill()

	if res := timer.Wait(time.Minute, nil); res != WaitKilled {
		t.Fatalf("Wait() = %v, want WaitKilled", res)
	}
}

func TestKill_Idempotent(t *testing.T) {
	timer := NewTimer()
	timer.Kill()
	timer.Kill()

	if !timer.Killed() {
		t.Fatal("Killed() = false after Kill()")
	}
}

func TestWait_WakeChannel(t *testing.T) {
	timer := NewTimer()
	wake := make(chan struct{}, 1)
	wake <- struct{}{}

	if res := timer.Wait(time.Minute, wake); res != WaitWoken {
		t.Fatalf("Wait() = %v, want WaitWoken", res)
	}
}
