package common

// Service endpoints.
const (
	BaseEndpoint    = "https://api-us-east-1-prod.happiestbaby.com"
	CognitoRegion   = "us-east-1"
	CognitoClientID = "6kqofhc8hm394ielqdkvli0oea"
)

// Outbound header names and values.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-Id"
	UserAgent               = "Happiest Baby/2.6.1 (com.happiestbaby.hbapp; build:114; iOS 18.5.0) Alamofire/5.9.1"
	DefaultTokenType        = "Bearer"
)

// Account, baby and device endpoints. The legacy paths are kept as
// fallbacks for the versioned ones.
const (
	AccountURI    = "/us/me"
	AccountV10URI = "/us/me/v10/me"

	BabyURI    = "/us/v3/me/baby"
	BabiesURI  = "/us/me/v10/babies"
	DevicesURI = "/me/devices"

	DevicesV11URI    = "/hds/me/v11/devices"
	DeviceConfigsURI = "/ds/devices/%s/configs"
)

// Sleep session endpoints.
const (
	SessionURI           = "/analytics/sessions/last"
	SessionStatsDailyURI = "/ss/v2/babies/%s/sessions/aggregated/daily"
	SessionStatsAvgURI   = "/ss/v2/babies/%s/sessions/aggregated/avg"
	SessionLastV10URI    = "/ss/me/v10/babies/%s/sessions/last"
	SessionDailyV11URI   = "/ss/me/v11/babies/%s/sessions/daily"
)

// Journal endpoints.
const (
	JournalsGroupedTrackingURI = "/cs/me/v11/babies/%s/journals/grouped-tracking"
	JournalsTrackingURI        = "/cs/me/v11/babies/%s/journals/tracking"
	JournalsURI                = "/cs/me/v11/journals"
	LastPumpingJournalURI      = "/cs/me/v11/journals/last-pumping-journal"
	PumpingJournalsTrackingURI = "/cs/me/v11/pumping-journals/tracking"
	LastJournalsURI            = "/cs/me/v12/babies/%s/last-journals"
)
