package messagingtest

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestMatch(t *testing.T) {
	tests := map[string]struct {
		pattern string
		subject string
		exp     bool
	}{
		"literal":        {pattern: "a.b", subject: "a.b", exp: true},
		"literal miss":   {pattern: "a.b", subject: "a.c", exp: false},
		"star":           {pattern: "a.*", subject: "a.b", exp: true},
		"star too deep":  {pattern: "a.*", subject: "a.b.c", exp: false},
		"tail":           {pattern: "a.>", subject: "a.b.c", exp: true},
		"tail needs one": {pattern: "a.>", subject: "a", exp: false},
		"too short":      {pattern: "a.b.c", subject: "a.b", exp: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "match", Match(tt.pattern, tt.subject), tt.exp)
		})
	}
}

func TestBus(t *testing.T) {
	b := NewBus()

	var got []string
	unsub, _ := b.Subscribe("x.*", func(subject string, data []byte) {
		got = append(got, subject+"="+string(data))
	})

	_ = b.Publish("x.a", []byte("1"))
	_ = b.Publish("y.a", []byte("2"))
	unsub()
	_ = b.Publish("x.b", []byte("3"))

	testutil.AssertEqual(t, "delivered", got, []string{"x.a=1"})
	testutil.AssertEqual(t, "recorded", len(b.Published("x.b")), 1)
	testutil.AssertEqual(t, "subscriptions", b.Subscriptions(), 0)
}
