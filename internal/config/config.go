package config

import (
	"io/fs"
	"strconv"
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
var UserAgent = "Profile-Gallery/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Profile Gallery"
	AppID             = "com.github.tartampluch.profile-gallery"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	EnvFileName       = ".env"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Environment
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	MsgVersionOutput = "%s version %s (%s/%s)\n"

	EnvAPIURL = "GALLERY_API_URL"
	EnvPort   = "GALLERY_PORT"
)

// -----------------------------------------------------------------------------
// Profile Source
// -----------------------------------------------------------------------------

const (
	// BatchSize is the fixed number of profiles requested at start-up.
	BatchSize = 12

	// SourceNationalities restricts the generated profiles to locales with Latin names.
	SourceNationalities = "au,br,ca,ch,de,es,fi,gb,ie,nl,nz,us"

	// SourceEndpoint is the randomuser API root.
	SourceEndpoint = "https://randomuser.me/api/"
)

// DefaultAPIURL is the single request issued by the gallery.
var DefaultAPIURL = SourceEndpoint + "?results=" + strconv.Itoa(BatchSize) + "&nat=" + SourceNationalities

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 1024
	MainWindowHeight    = 720
	SettingsWindowWidth = 420

	// Card grid: each card is placed in a fixed-size cell and the grid wraps.
	CardWidth       = 300
	CardHeight      = 120
	CardPictureSize = 80

	// Overlay picture.
	OverlayPictureSize = 140

	// Preference Keys
	PrefLanguage   = "language"
	PrefServerPort = "server_port"
	PrefLastRun    = "last_run_version"

	// Placeholder shown in the search entry when no locale is loaded.
	SearchPlaceholder = "Search..."

	// Separators used when assembling display lines.
	SepCityCountry = ", "
	SepNameParts   = " "
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// UI Birthdays Window Constants
// -----------------------------------------------------------------------------

const (
	// Window Dimensions
	BirthdaysWinWidth  = 550
	BirthdaysWinHeight = 400

	// Table Column IDs
	ColIDName = 0
	ColIDDate = 1
	ColIDAge  = 2
	ColCount  = 3

	// Table Layout
	ColWidthName = 250
	ColWidthDate = 120
	ColWidthAge  = 120

	// Display Formats & Placeholders
	DateFormatDisplay = "2006-01-02"
	TablePlaceholder  = "Cell Content"
	LogMsgOpenWin     = "Opening birthdays window"
	LogMsgSorted      = "Birthdays sorted"

	// Sorting Indicators
	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle      = "win_title"
	TKeyWinBirthdays  = "win_birthdays_title"
	TKeyWinSettings   = "win_settings_title"
	TKeySearchHint    = "search_placeholder"
	TKeyLoading       = "status_loading"
	TKeyLoadError     = "status_load_error"
	TKeyNoMatch       = "status_no_match"
	TKeyInvalidSearch = "status_invalid_search"
	TKeyBtnPrev       = "btn_prev"
	TKeyBtnNext       = "btn_next"
	TKeyBtnClose      = "btn_close"
	TKeyBtnSave       = "btn_save"
	TKeyBtnCancel     = "btn_cancel"
	TKeyLblBirthday   = "lbl_birthday" // Requires Date
	TKeyMenuBirthdays = "menu_birthdays"
	TKeyMenuSettings  = "menu_settings"
	TKeyLblLanguage   = "lbl_language"
	TKeyHelpLanguage  = "help_language"
	TKeyLblPort       = "lbl_server_port"
	TKeyHelpPort      = "help_port"
	TKeyLblFooter     = "lbl_footer"
	TKeyEvtSummaryAge = "event_summary_age" // Requires Name, Age
	TKeyColName       = "col_name"
	TKeyColDate       = "col_date"
	TKeyColAge        = "col_age"
	TKeyFormatDate    = "format_date_short"
	TKeyErrPortReq    = "err_port_required"
	TKeyErrPortNum    = "err_port_number"
	TKeyErrPortRange  = "err_port_range"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultPort     = "18081"
	DefaultLanguage = "en"
	UIDSalt         = "profile-gallery-v1-"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Profile Gallery//Export//EN"
	ICalCalName = "Profile Birthdays"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "profilegallery"

	// iCal Fields
	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	// vCard
	VCardVersion   = "4.0"
	VCardBDAYBasic = "20060102"

	DefaultICalRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	// Date layouts accepted for the profile birth date.
	DateFormatRFC3339Milli = "2006-01-02T15:04:05.000Z07:00"
	DateFormatRFC3339      = time.RFC3339
	DateFormatFullDash     = "2006-01-02"
	DateFormatFullBasic    = "20060102"
	DateFormatCompact      = "060102"

	// Display layout of the birthday in the detail overlay.
	FormatBirthdayDisplay = "%s/%s/%s"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	FormatHashInput = "%s|%s|%s|%s"
	FormatUID       = "%s-%d@%s"

	// Search
	CaseInsensitiveFlag = "(?i)"
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
	RetryAfterSeconds   = "10"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	CORSMaxAge          = 300
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	AddrSeparator       = ":"

	// Export routes
	RouteCalendar = "/birthdays.ics"
	RouteContacts = "/contacts.vcf"
)

// AllowedMethods lists the methods accepted by the export feeds.
var AllowedMethods = []string{"GET", "HEAD"}

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextVCard       = "text/vcard; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrSourceURLEmpty = "configuration error: source URL is empty"
	ErrFetcherMissing = "internal error: network fetcher is not initialized"
	ErrFetchFailed    = "failed to fetch profiles"
	ErrDecodeProfiles = "failed to decode profile batch"
	ErrNoResults      = "response carries no results"
	ErrTooLarge       = "response body exceeds size limit"
	ErrNetwork        = "network error during fetch"
	ErrPostcodeType   = "unsupported postcode type"
	ErrInvalidPattern = "invalid search pattern"
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrUnknownFeed    = "unknown export feed"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrBadStatus      = "server returned unexpected status"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrVCardEncode    = "failed to encode vCard data"
	ErrDateParse      = "unable to parse date"
	ErrPictureLoad    = "failed to load profile picture"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrExportFailed   = "failed to build exports"
	ErrEnvFile        = "no .env file loaded, relying on system environment"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Export initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackSummaryAge = "Birthday: %s (%d)"
	FallbackBirthday   = "Birthday: %s"
	FallbackLoadError  = "There is a problem!"
	FallbackName       = "Unknown"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleStartupError = "Startup Error"

	MsgPortBusy       = "Port %s is busy or unavailable."
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgAppStarting    = "Starting application"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Export cache updated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgFetchStarted   = "Fetching profile batch"
	MsgFetchDone      = "Profile batch loaded"
	MsgFetchRequest   = "Sending GET request"
	MsgGalleryRender  = "Gallery rendered"
	MsgSearchApplied  = "Search applied"
	MsgOverlayOpen    = "Detail overlay opened"
	MsgOverlayClose   = "Detail overlay closed"
	MsgOverlayBound   = "Navigation at list boundary, ignoring"
	MsgExportDone     = "Exports generated"
	MsgSkippedDate    = "Skipping profile with unparseable birth date"
	MsgBdayToday      = "Birthday found today"
	MsgSettingsSaved  = "Saving preferences"
	MsgSettingsFocus  = "Settings window already open, requesting focus"
	MsgSettingsOpen   = "Opening settings window"
	MsgEnvOverride    = "Environment override applied"
	MsgPictureLoading = "Downloading profile picture"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyFeed      = "feed"
	LogKeyQuery     = "query"
	LogKeyIndex     = "index"
	LogKeyDelta     = "delta"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeySortCol   = "sort_column"
	LogKeySortAsc   = "sort_asc"
	LogKeyCount     = "count"
	LogKeyVisible   = "visible"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeyDuration  = "duration_ms"
	LogKeyTotal     = "total_profiles"
	LogKeyEvents    = "calendar_events"
	LogKeyToday     = "birthdays_today"
	LogKeyEnv       = "env"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompUISet    = "ui_settings"
	CompGallery  = "gallery"
	CompOverlay  = "overlay"
	CompSource   = "source"
	CompExporter = "exporter"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompMain     = "main"
	CompI18n     = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
