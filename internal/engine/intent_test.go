package engine

import (
	"testing"

	"augur/pkg/models"
)

func TestActualIntent(t *testing.T) {
	tests := []struct {
		name string
		body string
		want models.Intent
	}{
		{"network call", "def validate_user():\n    requests.get(url)", models.IntentNetwork},
		{"auth", "def handle():\n    login(user, password)", models.IntentAuthentication},
		{"database", "def q():\n    cursor.execute(stmt)", models.IntentDatabase},
		{"encryption", "def f():\n    hashlib.sha256(data)", models.IntentEncryption},
		{"validation", "def f():\n    if not is_valid(x): return", models.IntentValidation},
		{"error handling", "def f():\n    try:\n        g()\n    except ValueError:\n        pass", models.IntentErrorHandling},
		{"plain", "def f():\n    return 1", models.IntentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ActualIntent(tt.body); got != tt.want {
				t.Errorf("ActualIntent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpectedIntent(t *testing.T) {
	tests := []struct {
		fnName string
		want   models.Intent
	}{
		{"validate_user", models.IntentValidation},
		{"check_input", models.IntentValidation},
		{"fetch_orders", models.IntentNetwork},
		{"login_handler", models.IntentAuthentication},
		{"process_payment", models.IntentDataProcessing},
		{"csv_parser", models.IntentDataProcessing},
		{"render_page", models.IntentUIInteraction},
		{"save_report", models.IntentFileOperations},
		{"encrypt_blob", models.IntentEncryption},
		{"query_users", models.IntentDatabase},
		{"foo", models.IntentUnknown},
		{"main", models.IntentUnknown},
		{"helper", models.IntentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.fnName, func(t *testing.T) {
			if got := ExpectedIntent(tt.fnName); got != tt.want {
				t.Errorf("ExpectedIntent(%q) = %v, want %v", tt.fnName, got, tt.want)
			}
		})
	}
}

// Overlapping keyword sets resolve by table order, earliest category
// wins.
func TestIntentTableOrderBreaksTies(t *testing.T) {
	// "login" appears in the authentication keywords and nowhere
	// earlier, so it must classify as authentication even though the
	// surrounding text also mentions validation further down the table.
	got := ActualIntent("def f():\n    login(user)\n    validate(user)")
	if got != models.IntentAuthentication {
		t.Errorf("ActualIntent() = %v, want authentication (first table entry wins)", got)
	}
}
