package intent

import "testing"

func TestClassify(t *testing.T) {
	c := NewClassifier([]string{"busDashboard", "trips"})

	cases := []struct {
		name string
		in   Input
		want Intent
	}{
		{
			name: "affirmation with token confirms",
			in:   Input{Text: "yes", PendingID: "p_1"},
			want: Intent{Kind: KindConfirm, Token: "p_1"},
		},
		{
			name: "affirmation is case and punctuation tolerant",
			in:   Input{Text: "  Proceed! ", PendingID: " p_2 "},
			want: Intent{Kind: KindConfirm, Token: "p_2"},
		},
		{
			name: "affirmation without token is not a confirmation",
			in:   Input{Text: "yes"},
			want: Intent{Kind: KindUnrecognized, Message: HelpMessage},
		},
		{
			name: "confirm wins over status wording",
			in:   Input{Text: "confirm", PendingID: "p_3", CurrentPage: "busDashboard"},
			want: Intent{Kind: KindConfirm, Token: "p_3"},
		},
		{
			name: "status of trip",
			in:   Input{Text: "status of Bulk - 00:01"},
			want: Intent{Kind: KindStatus, Candidate: "Bulk - 00:01"},
		},
		{
			name: "status followed by colon",
			in:   Input{Text: "status: Bulk - 00:01"},
			want: Intent{Kind: KindStatus, Candidate: "Bulk - 00:01"},
		},
		{
			name: "status followed by dash",
			in:   Input{Text: "Status - Bulk - 00:01"},
			want: Intent{Kind: KindStatus, Candidate: "Bulk - 00:01"},
		},
		{
			name: "what is the status of trip",
			in:   Input{Text: "What is the status of NoShow - BTS - 13:00?"},
			want: Intent{Kind: KindStatus, Candidate: "NoShow - BTS - 13:00"},
		},
		{
			name: "trailing status word",
			in:   Input{Text: "Bulk - 00:01 status"},
			want: Intent{Kind: KindStatus, Candidate: "Bulk - 00:01"},
		},
		{
			name: "status with screenshot text prefers screenshot",
			in:   Input{Text: "status", ImageText: "Bulk - 00:01"},
			want: Intent{Kind: KindStatus, Candidate: "Bulk - 00:01"},
		},
		{
			name: "bare status needs clarification",
			in:   Input{Text: "status"},
			want: Intent{Kind: KindStatus, RequiresClarification: true, Message: ClarifyStatusMessage},
		},
		{
			name: "status wins over remove wording",
			in:   Input{Text: "status of remove vehicle from Bulk - 00:01"},
			want: Intent{Kind: KindStatus, Candidate: "remove vehicle from Bulk - 00:01"},
		},
		{
			name: "trip-like text on trips page is a status query",
			in:   Input{Text: "Path Path - 09:30", CurrentPage: "BusDashboard"},
			want: Intent{Kind: KindStatus, Candidate: "Path Path - 09:30"},
		},
		{
			name: "remove command on trips page is still a removal",
			in:   Input{Text: "Remove vehicle from Bulk - 00:01", CurrentPage: "busDashboard"},
			want: Intent{Kind: KindRemoveVehicle, Candidate: "Bulk - 00:01"},
		},
		{
			name: "remove vehicle from trip",
			in:   Input{Text: "Remove vehicle from Bulk - 00:01"},
			want: Intent{Kind: KindRemoveVehicle, Candidate: "Bulk - 00:01"},
		},
		{
			name: "remove the vehicle from quoted trip",
			in:   Input{Text: `please remove the vehicle from "Bulk - 00:01".`},
			want: Intent{Kind: KindRemoveVehicle, Candidate: "Bulk - 00:01"},
		},
		{
			name: "remove vehicle without target needs clarification",
			in:   Input{Text: "remove vehicle"},
			want: Intent{Kind: KindRemoveVehicle, RequiresClarification: true, Message: ClarifyRemoveMessage},
		},
		{
			name: "remove vehicle prefers screenshot text",
			in:   Input{Text: "remove vehicle from this one", ImageText: " Bulk - 00:01 "},
			want: Intent{Kind: KindRemoveVehicle, Candidate: "Bulk - 00:01"},
		},
		{
			name: "remove with screenshot only",
			in:   Input{Text: "remove it", ImageText: "NoShow - BTS - 13:00"},
			want: Intent{Kind: KindRemoveVehicle, Candidate: "NoShow - BTS - 13:00"},
		},
		{
			name: "remove without vehicle or screenshot is unrecognized",
			in:   Input{Text: "remove Bulk - 00:01"},
			want: Intent{Kind: KindUnrecognized, Message: HelpMessage},
		},
		{
			name: "delimiter fallback is a status query",
			in:   Input{Text: "Bulk - 00:01"},
			want: Intent{Kind: KindStatus, Candidate: "Bulk - 00:01"},
		},
		{
			name: "removal word is not matched inside other words",
			in:   Input{Text: "removed vehicles from 10:00"},
			want: Intent{Kind: KindStatus, Candidate: "removed vehicles from 10:00"},
		},
		{
			name: "free text is unrecognized",
			in:   Input{Text: "hello there"},
			want: Intent{Kind: KindUnrecognized, Message: HelpMessage},
		},
		{
			name: "empty input is unrecognized",
			in:   Input{},
			want: Intent{Kind: KindUnrecognized, Message: HelpMessage},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Classify(tc.in)
			if got != tc.want {
				t.Fatalf("Classify(%+v)\n got  %+v\n want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestStatusCandidate(t *testing.T) {
	cases := map[string]string{
		"status of Bulk - 00:01":             "Bulk - 00:01",
		"status for 'Bulk - 00:01'":          "Bulk - 00:01",
		"show me the status of Bulk - 00:01": "Bulk - 00:01",
		"what's the status of Bulk - 00:01?": "Bulk - 00:01",
		"Bulk - 00:01":                       "Bulk - 00:01",
		"status":                             "",
		"status: Bulk - 00:01":               "Bulk - 00:01",
		"Status - Bulk - 00:01":              "Bulk - 00:01",
		"status of: Bulk - 00:01":            "Bulk - 00:01",
		"status – Bulk - 00:01":              "Bulk - 00:01",
	}
	for in, want := range cases {
		if got := StatusCandidate(in); got != want {
			t.Fatalf("StatusCandidate(%q) = %q, want %q", in, got, want)
		}
	}
}
