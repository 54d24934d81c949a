package result

import "testing"

func TestOk(t *testing.T) {
	res := Ok(42)
	if !res.Successful() {
		t.Fatalf("Ok must be successful")
	}
	if res.Payload != 42 {
		t.Fatalf("payload lost: %d", res.Payload)
	}
	if res.Message() != "" {
		t.Fatalf("success has no message, got %q", res.Message())
	}
}

func TestFailf(t *testing.T) {
	res := Failf[int]("not enough %s", "gold")
	if res.Successful() {
		t.Fatalf("Failf must not be successful")
	}
	if res.Message() != "not enough gold" {
		t.Fatalf("unexpected message %q", res.Message())
	}
}

func TestFailMessagesCopies(t *testing.T) {
	msgs := []string{"first", "second"}
	res := FailMessages[int](msgs)
	msgs[0] = "mutated"
	if res.Messages[0] != "first" {
		t.Fatalf("messages must not alias the caller's slice")
	}
	if res.Message() != "first" {
		t.Fatalf("Message should return the first message, got %q", res.Message())
	}
}
