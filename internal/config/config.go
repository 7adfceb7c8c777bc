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
var UserAgent = "Thien-Co/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName        = "Thiên Cơ Đại Tướng Quân"
	AppBinary      = "thienco"
	AppID          = "com.github.tartampluch.go-thienco"
	KeyringService = "com.github.tartampluch.go-thienco"
	KeyringUser    = "telegram-bot-token"
	BindAddr       = "0.0.0.0"
	LogFileName    = "app.log"
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
// CLI Commands, Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	CmdServe    = "serve"
	CmdForecast = "forecast [DD/MM/YYYY]"
	CmdFeed     = "feed"
	CmdToken    = "token"
	CmdTokenSet = "set"

	FlagDebug  = "debug"
	FlagDays   = "days"
	FlagOutput = "output"

	FlagDescDebug  = "Enable debug logging to stdout"
	FlagDescDays   = "Number of days covered by the calendar feed"
	FlagDescOutput = "Write the feed to this file instead of stdout"

	DescRoot     = "Daily Bát Tự and numerology forecasts for developers"
	DescServe    = "Run the Telegram bot, the daily scheduler and the HTTP server"
	DescForecast = "Print the forecast for a date (defaults to tomorrow)"
	DescFeed     = "Write an iCalendar feed of upcoming forecasts"
	DescToken    = "Manage the Telegram bot token stored in the OS keyring"
	DescTokenSet = "Read the bot token from stdin and store it in the keyring"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
	MsgTokenStored   = "Token stored in keyring"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultBirthDay     = 14
	DefaultBirthMonth   = 4
	DefaultBirthYear    = 2001
	DefaultElement      = "Kim"
	DefaultBranch       = "Tỵ"
	DefaultScheduleHour = 20
	DefaultTimezone     = "Asia/Ho_Chi_Minh"
	DefaultPort         = "8080"
	DefaultLanguage     = "vi"
	DefaultFeedDays     = 30
	MaxFeedDays         = 366

	// MaxAdviceItems caps both the "should do" and the "should avoid" lists.
	MaxAdviceItems = 4

	// Luck score bands used by the advice rules.
	LuckHighThreshold  = 7
	LuckMidThreshold   = 5
	LuckLowThreshold   = 3
	LuckGreatThreshold = 8

	// DateFormatInput parses DD/MM/YYYY; leading zeros are optional.
	DateFormatInput   = "2/1/2006"
	DateFormatDisplay = "02/01/2006"
	DateFormatFeed    = "2006-01-02"
	FormatLunarDate   = "%02d/%02d"
)

// SupportedLanguages defines the list of available message languages (ISO 639-1).
var SupportedLanguages = []string{"vi", "en"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	// Report layout
	TKeyReportTitle      = "report_title"
	TKeyReportDate       = "report_date"
	TKeyReportLunarLeap  = "report_lunar_leap"
	TKeyReportEnergy     = "report_energy"
	TKeyReportDayNumber  = "report_day_number"
	TKeyReportLuck       = "report_luck"
	TKeyReportVitality   = "report_vitality"
	TKeyReportShouldDo   = "report_should_do"
	TKeyReportShouldNot  = "report_should_avoid"
	TKeyReportMessage    = "report_message"
	TKeyReportColor      = "report_color"
	TKeyReportDutyGod    = "report_duty_god"
	TKeyReportAuspicious = "report_auspicious"
	TKeyReportOminous    = "report_inauspicious"
	TKeyReportClash      = "report_clash"
	TKeyReportHarmony    = "report_harmony"
	TKeyReportTriple     = "report_triple_harmony"
	TKeyReportElements   = "report_elements"
	TKeyReportMatch      = "report_compatibility"
	TKeyFeedSummary      = "feed_summary"
	TKeyFeedCalName      = "feed_calendar_name"

	// Bot replies
	TKeyBotWelcome    = "bot_welcome"
	TKeyBotHelp       = "bot_help"
	TKeyBotUsage      = "bot_usage_dubao"
	TKeyBotBadDate    = "bot_bad_date"
	TKeyBotWorking    = "bot_working"
	TKeyBotTomorrow   = "bot_working_tomorrow"
	TKeyBotFailure    = "bot_failure"
	TKeyBotUnknownCmd = "bot_unknown_command"
	TKeyDailyFailure  = "daily_failure"

	// Vitality descriptions
	TKeyVitalityProsperous = "vitality_prosperous"
	TKeyVitalityGrowing    = "vitality_growing"
	TKeyVitalityResting    = "vitality_resting"
	TKeyVitalityImprisoned = "vitality_imprisoned"
	TKeyVitalityDead       = "vitality_dead"

	// Compatibility tiers
	TKeyMatchHarmonious = "match_harmonious"
	TKeyMatchSupportive = "match_supportive"
	TKeyMatchNeutral    = "match_neutral"
	TKeyMatchChallenge  = "match_challenging"

	// Advice: luck bands
	TKeyDoDeploy   = "do_deploy"
	TKeyDoRefactor = "do_refactor"
	TKeyDoPitch    = "do_pitch"
	TKeyDoFeature  = "do_feature"
	TKeyDoReview   = "do_review"
	TKeyDoColors   = "do_colors"
	TKeyDoMeeting  = "do_morning_meeting"

	TKeyAvoidDeploy   = "avoid_deploy"
	TKeyAvoidArgue    = "avoid_argue"
	TKeyAvoidDecision = "avoid_big_decision"
	TKeyAvoidMeeting  = "avoid_tense_meeting"
	TKeyAvoidLatePush = "avoid_late_push"
	TKeyAvoidChanges  = "avoid_many_changes"
	TKeyAvoidBigTeam  = "avoid_big_team"
	TKeyAvoidNoBackup = "avoid_no_backup"

	// Prefixes completed with an element or number suffix.
	TKeyPrefixElementDo    = "do_element_"
	TKeyPrefixElementAvoid = "avoid_element_"
	TKeyPrefixNumberDo     = "do_number_"
	TKeyPrefixNumberName   = "number_name_"
	TKeyPrefixElementName  = "element_"
	TKeyPrefixColorName    = "color_name_"
	TKeyPrefixMsgGreat     = "cosmic_great_"
	TKeyPrefixMsgPoor      = "cosmic_poor_"
	TKeyPrefixMsgClash     = "cosmic_clash_"
	TKeyPrefixMsgCalm      = "cosmic_calm_"

	// CosmicTemplatesPerBucket is the number of cosmic message variants per bucket.
	CosmicTemplatesPerBucket = 3

	LocalesDir    = "locales"
	LocalePrefix  = "active."
	LocaleSuffix  = ".json"
	LuckStar      = "⭐"
	ListBullet    = "• "
	LuckyColorTag = "`%s`"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Thien Co//Forecast Feed//EN"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDescription = "DESCRIPTION"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"
	PropCategories  = "CATEGORIES"

	VCardBDAY    = "BDAY"
	VCardFN      = "FN"
	VCardElement = "X-ELEMENT"
	VCardBranch  = "X-BRANCH"

	DefaultICalRefresh = 12 * time.Hour

	// UIDNamespace seeds uuid.NewSHA1 so feed event UIDs are stable across refreshes.
	UIDNamespace = "6f1b9a52-4c1e-4a2b-9d0e-7f3c2b1a0e11"
	UIDDomain    = "thienco"
	FormatUID    = "%s@%s"
)

// -----------------------------------------------------------------------------
// Data Formats & vCard Date Layouts
// -----------------------------------------------------------------------------

const (
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
)

// -----------------------------------------------------------------------------
// Telegram Bot API
// -----------------------------------------------------------------------------

const (
	TelegramAPIBase      = "https://api.telegram.org"
	TelegramEndpointPath = "/bot%s/%s"
	TelegramMethodSend   = "sendMessage"
	TelegramMethodPoll   = "getUpdates"
	TelegramMethodDel    = "deleteMessage"
	TelegramPollTimeout  = 30 // seconds, server side long polling
	TelegramRetryDelay   = 5 * time.Second
	VCardMaxBody         = 1 * 1024 * 1024
	SchemeHTTP           = "http"
	SchemeHTTPS          = "https"

	BotCmdStart    = "/start"
	BotCmdHelp     = "/help"
	BotCmdForecast = "/dubao"
	BotCmdTomorrow = "/ngaymai"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout        = 45 * time.Second
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AddrSeparator      = ":"

	RouteRoot    = "/"
	RouteHealth  = "/health"
	RouteFeed    = "/forecast.ics"
	RouteMetrics = "/metrics"

	HealthStatusOK      = "healthy"
	HTTPMsgInitializing = "Forecast feed is being prepared, retry later"
	MsgRootBanner       = "🔮 " + AppName + " is running!"

	// FeedRefreshInterval re-renders the served feed so it always starts today.
	FeedRefreshInterval = time.Hour
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json"
	MimeTextPlain       = "text/plain; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrTokenRequired    = "configuration error: TELEGRAM_BOT_TOKEN is required"
	ErrChatIDRequired   = "configuration error: TELEGRAM_CHAT_ID is required"
	ErrScheduleHour     = "configuration error: SCHEDULE_HOUR must be between 0 and 23"
	ErrSchedule         = "invalid daily schedule"
	ErrFeedDays         = "configuration error: FEED_DAYS must be between 1 and 366"
	ErrTimezone         = "configuration error: unknown TIMEZONE"
	ErrLanguage         = "configuration error: unsupported BOT_LANGUAGE"
	ErrEnvParse         = "failed to parse environment"
	ErrProfile          = "invalid user profile"
	ErrProfileBirthDate = "birth date is not a valid calendar date"
	ErrProfileVCard     = "failed to read profile vCard"
	ErrProfileNoBDAY    = "profile vCard has no BDAY"
	ErrInvalidURL       = "invalid vCard URL"
	ErrProtocol         = "unsupported vCard URL scheme"
	ErrFetchStatus      = "vCard server returned unexpected status"
	ErrLunarConvert     = "solar to lunar conversion failed"
	ErrForecast         = "forecast computation failed"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "unable to parse date"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTelegramRequest  = "telegram request failed"
	ErrTelegramAPI      = "telegram API returned an error"
	ErrTelegramDecode   = "failed to decode telegram response"
	ErrKeyringRead      = "failed to read token from keyring"
	ErrKeyringWrite     = "failed to store token in keyring"
	ErrTokenEmpty       = "token read from stdin is empty"
	ErrFeedWrite        = "failed to write feed"
	ErrDailySend        = "daily forecast failed"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Feed cache updated"
	MsgFeedRefreshed  = "Forecast feed refreshed"
	MsgForecastDone   = "Forecast computed"
	MsgSchedulerStart = "Scheduler started"
	MsgSchedulerStop  = "Scheduler stopping due to context cancellation"
	MsgSchedulerNext  = "Next daily forecast scheduled"
	MsgDailySent      = "Daily forecast sent"
	MsgBotStart       = "Telegram polling started"
	MsgBotStop        = "Telegram polling stopped"
	MsgBotCommand     = "Command received"
	MsgBotForeignChat = "Ignoring message from unconfigured chat"
	MsgBotPollFailed  = "Polling failed, retrying"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Locale file has no language code"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgKeyringMiss    = "Token not found in keyring"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgConfigLoaded   = "Configuration loaded"
	MsgProfileLoaded  = "Profile loaded from vCard"
	MsgVCardFetch     = "Downloading profile vCard"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyDate      = "date"
	LogKeyScore     = "luck_score"
	LogKeyCanChi    = "can_chi"
	LogKeyDutyGod   = "duty_god"
	LogKeyDays      = "days"
	LogKeyNextRun   = "next_run"
	LogKeySchedule  = "schedule"
	LogKeyCommand   = "command"
	LogKeyChat      = "chat_id"
	LogKeyOffset    = "offset"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyHour      = "hour"
	LogKeyTimezone  = "timezone"
	LogKeyName      = "name"
	LogKeyMethod    = "method"
	LogKeyURL       = "url"

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
	CompServer    = "server"
	CompScheduler = "scheduler"
	CompBot       = "bot"
	CompReport    = "report"
	CompMain      = "main"
	CompI18n      = "i18n"
	CompConfig    = "config"
	CompProfile   = "profile"
)
