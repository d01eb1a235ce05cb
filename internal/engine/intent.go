package engine

import (
	"strings"

	"augur/pkg/models"
)

// intentEntry pairs a category with its trigger keywords. The table is
// scanned in order and the first category with a matching keyword wins,
// which makes the tie-break among overlapping keyword sets explicit.
type intentEntry struct {
	intent   models.Intent
	keywords []string
}

// bodyIntentTable classifies a declaration by the text of its body.
var bodyIntentTable = []intentEntry{
	{models.IntentAuthentication, []string{"authenticate", "login", "logout", "password", "credential", "oauth", "session_token"}},
	{models.IntentDataProcessing, []string{"transform", "normalize", "aggregate", "serialize", "deserialize", "json.loads", "json.dumps", "dataframe"}},
	{models.IntentNetwork, []string{"request", "http", "api", "fetch", "download", "upload", "socket", "urllib"}},
	{models.IntentUIInteraction, []string{"render", "display", "click", "button", "widget", "window", "screen"}},
	{models.IntentFileOperations, []string{"open(", "read(", "write(", "readlines", "os.path", "pathlib", "glob"}},
	{models.IntentValidation, []string{"validate", "verify", "is_valid", "sanitize", "assert"}},
	{models.IntentErrorHandling, []string{"except", "raise", "rescue", "catch", "traceback", "recover("}},
	{models.IntentEncryption, []string{"encrypt", "decrypt", "cipher", "hashlib", "hmac", "sha256", "bcrypt"}},
	{models.IntentDatabase, []string{"select ", "insert into", "update ", "cursor", "sqlalchemy", "commit()", "rollback"}},
}

// nameIntentTable classifies a declaration by its identifier alone. It
// is looser than the body table since names carry less context.
var nameIntentTable = []intentEntry{
	{models.IntentAuthentication, []string{"auth", "login", "logout", "password", "credential", "token"}},
	{models.IntentDataProcessing, []string{"process", "transform", "parse", "convert", "processor", "parser", "aggregate"}},
	{models.IntentNetwork, []string{"http", "request", "fetch", "download", "upload", "url", "socket", "api"}},
	{models.IntentUIInteraction, []string{"render", "display", "draw", "button", "widget", "view", "screen"}},
	{models.IntentFileOperations, []string{"file", "save", "load", "export", "import_", "dir", "path"}},
	{models.IntentValidation, []string{"valid", "check", "verify", "sanitize", "ensure"}},
	{models.IntentErrorHandling, []string{"error", "exception", "retry", "fallback", "recover"}},
	{models.IntentEncryption, []string{"encrypt", "decrypt", "hash", "cipher", "sign"}},
	{models.IntentDatabase, []string{"db", "database", "query", "sql", "record", "store"}},
}

func classify(table []intentEntry, text string) models.Intent {
	lower := strings.ToLower(text)
	for _, entry := range table {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.intent
			}
		}
	}
	return models.IntentUnknown
}

// ActualIntent infers a category from a declaration's body text.
func ActualIntent(body string) models.Intent {
	return classify(bodyIntentTable, body)
}

// ExpectedIntent infers the category a declaration's name promises.
func ExpectedIntent(name string) models.Intent {
	return classify(nameIntentTable, name)
}
