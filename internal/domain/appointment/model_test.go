package appointment

import "testing"

func TestParseStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want Status
	}{
		{"", StatusNone},
		{"   ", StatusNone},
		{"rescheduled", StatusRescheduled},
		{"Reagendou", StatusRescheduled},
		{"reagendou", StatusRescheduled},
		{"🟢Reagendou", StatusRescheduled},
		{"🔴Não quer reagendar", StatusWillNotReschedule},
		{"🟡Não atendeu (retornar contato)", StatusNoAnswerPending},
		{"🔵Mudou de médico", StatusChangedDoctor},
		{"🟦Mensagem enviada", StatusMessageSent},
		{"message_sent", StatusMessageSent},
		{"algo digitado à mão", StatusNone},
	}
	for _, tc := range cases {
		if got := ParseStatus(tc.raw); got != tc.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestStatusLabelRoundTrip(t *testing.T) {
	for _, st := range AllStatuses {
		if got := ParseStatus(st.Label()); got != st {
			t.Errorf("ParseStatus(Label(%q)) = %q", st, got)
		}
	}
}

func TestStatusValid(t *testing.T) {
	if !StatusNone.Valid() {
		t.Error("expected empty status to be valid")
	}
	if Status("cancelled").Valid() {
		t.Error("expected unknown status to be invalid")
	}
}
