package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-DateDiff/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "datediff"
	AppUsage          = "Civil calendar date differences"
	AppID             = "com.github.tartampluch.go-datediff"
	KeyringService    = "com.github.tartampluch.go-datediff"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
	ExitCodeUsage   = 2
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// FilePermShared represents -rw-r--r--, used for exported calendars.
	FilePermShared fs.FileMode = 0644

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Commands, Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	CmdDiff  = "diff"
	CmdAges  = "ages"
	CmdServe = "serve"

	UsageDiff      = "Difference between two dates in years, months and days"
	UsageAges      = "Ages and upcoming birthdays of vCard contacts"
	UsageServe     = "Serve the diff engine over HTTP"
	ArgsUsageDiff  = "START END (YYYY/MM/DD)"
	UsageTextDiff  = "datediff diff 2020/01/15 2021/03/01 [options]"
	UsageTextAges  = "datediff ages --file contacts.vcf [options]"
	UsageTextServe = "datediff serve [--port 18081]"

	FlagDebug        = "debug"
	FlagVersion      = "version"
	FlagFormat       = "format"
	FlagICS          = "ics"
	FlagFile         = "file"
	FlagURL          = "url"
	FlagUser         = "user"
	FlagPassword     = "password"
	FlagSavePassword = "save-password"
	FlagPort         = "port"

	FlagDescDebug        = "Enable debug logging to stderr and the log file"
	FlagDescVersion      = "Print version information and exit"
	FlagDescFormat       = "Output format: text, json or yaml"
	FlagDescICS          = "Also write an iCalendar file to this path"
	FlagDescFile         = "Local vCard file"
	FlagDescURL          = "CardDAV or WebDAV URL serving vCards"
	FlagDescUser         = "HTTP Basic Auth username"
	FlagDescPassword     = "HTTP Basic Auth password (falls back to the OS keyring)"
	FlagDescSavePassword = "Store --password in the OS keyring for --user"
	FlagDescPort         = "Port to listen on"

	EnvFormat = "DATEDIFF_FORMAT"
	EnvPort   = "DATEDIFF_PORT"

	MsgVersionOutput = "%s version %s (%s, built %s) %s/%s\n"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb   = "web"
	SourceModeLocal = "local"
	DefaultPort     = "18081"
	DefaultFormat   = FormatText
	DefaultLeapYear = 2000 // Leap year placeholder for dates like --02-29
	UIDSalt         = "go-datediff-v1-"

	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatICS  = "ics"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go DateDiff//Engine//EN"
	ICalCalName = "Date differences"
	ICalBdays   = "Birthdays"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "godatediff"
	ICalMaxYear = 9999 // DATE values carry exactly four year digits

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTEnd      = "DTEND"
	PropDTStamp    = "DTSTAMP"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	FormatIntervalSummary = "%s → %s: %s"
	FormatBirthdaySummary = "Birthday: %s"
	FormatBirthdayAge     = "Birthday: %s (%d)"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	MinPort = 1
	MaxPort = 65535

	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%s@%s"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteDiff           = "/diff"
	RouteHealth         = "/healthz"
	AddrSeparator       = ":"

	QueryStart  = "start"
	QueryEnd    = "end"
	QueryFormat = "format"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType  = "Content-Type"
	HeaderCacheControl = "Cache-Control"
	HeaderETag         = "ETag"
	HeaderAllow        = "Allow"
	HeaderXContentType = "X-Content-Type-Options"
	HeaderUserAgent    = "User-Agent"
	HeaderIfNoneMatch  = "If-None-Match"

	MimeJSON            = "application/json; charset=utf-8"
	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextPlain       = "text/plain; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPublic  = "public, max-age=86400"
	CacheControlNoStore = "no-store"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty  = "configuration error: local path is empty"
	ErrWebURLEmpty     = "configuration error: web URL is empty"
	ErrFetcherMissing  = "internal error: network fetcher is not initialized"
	ErrModeUnsupport   = "configuration error: unsupported source mode"
	ErrSourceConflict  = "exactly one of --file or --url is required"
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrPortRequired    = "server port is required"
	ErrPortNumber      = "server port must be a number"
	ErrPortRange       = "server port must be between 1 and 65535"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrVCardParse      = "failed to parse vCard stream"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrICalWrite       = "failed to write iCalendar file"
	ErrICalYearRange   = "iCalendar dates must fall in years 1 to 9999"
	ErrDateParse       = "unable to parse date"
	ErrArgCount        = "expected exactly two dates: START END"
	ErrMissingQuery    = "query parameters start and end are required"
	ErrUnknownFormat   = "unknown output format"
	ErrRender          = "failed to render output"
	ErrClockDate       = "clock returned a date outside the supported range"
	ErrKeyringGet      = "failed to read password from keyring"
	ErrKeyringSet      = "failed to store password in keyring"
	ErrSaveNeedsCreds  = "--save-password requires --user and --password"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrWriteResp       = "failed to write response body"
	ErrEncodeResp      = "failed to encode response"
	ErrUnexpectedState = "server returned unexpected status"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
	HTTPMsgHealthy      = "ok"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackName = "Unknown"

	MsgReportStarted = "Age report started"
	MsgReportDone    = "Age report finished"
	MsgDiffComputed  = "Date difference computed"
	MsgDiffRejected  = "Date difference rejected"
	MsgAppStop       = "Application stopped gracefully"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgAppStarting   = "Starting application"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgPassFail      = "Password retrieval failed (might be empty)"
	MsgPassSaved     = "Password stored in keyring"
	MsgICSWritten    = "iCalendar file written"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgDownloadStart = "Initiating vCard download"
	MsgDownloading   = "vCards downloading"
	MsgBadStatus     = "Server returned error status"
	MsgBdayToday     = "Birthday found today"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyLength    = "content_length"
	LogKeyFile      = "file"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyUser      = "user"
	LogKeyStart     = "start"
	LogKeyEnd       = "end"
	LogKeyRule      = "rule"
	LogKeyTotalDays = "total_days"
	LogKeyInverted  = "inverted"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "birthdays_found"
	LogKeyToday     = "birthdays_today"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeyDuration  = "duration_ms"
	LogKeyFormat    = "format"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompEngine  = "engine"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompKeyring = "keyring"
	CompCommand = "command"
	CompMain    = "main"
)
