package happiestbaby

import (
	"github.com/dmitrijs2005/happiestbaby/internal/client/auth"
	"github.com/dmitrijs2005/happiestbaby/internal/client/config"
	"github.com/dmitrijs2005/happiestbaby/internal/client/journal"
	"github.com/dmitrijs2005/happiestbaby/internal/client/models"
	"github.com/dmitrijs2005/happiestbaby/internal/client/services"
	"github.com/dmitrijs2005/happiestbaby/internal/common"
	"github.com/dmitrijs2005/happiestbaby/internal/logging"
)

// Errors. All of them match ErrSnoo with errors.Is; a *RequestError matches
// ErrRequest.
var (
	ErrSnoo               = common.ErrSnoo
	ErrInvalidCredentials = common.ErrInvalidCredentials
	ErrAuthentication     = common.ErrAuthentication
	ErrRequest            = common.ErrRequest
	ErrUnexpectedResponse = common.ErrUnexpectedResponse
	ErrInvalidEntry       = common.ErrInvalidEntry
)

// ErrRejected is returned by an IdentityProvider that refuses the username,
// password or refresh token.
var ErrRejected = auth.ErrRejected

type RequestError = common.RequestError

type (
	Config           = config.Config
	Logger           = logging.Logger
	IdentityProvider = auth.IdentityProvider
	Tokens           = auth.Tokens
	State            = auth.State
	Snapshot         = services.Snapshot
)

const (
	StateUnauthenticated = auth.StateUnauthenticated
	StateAuthenticating  = auth.StateAuthenticating
	StateAuthenticated   = auth.StateAuthenticated
	StateRefreshing      = auth.StateRefreshing
	StateFailed          = auth.StateFailed
)

type (
	CredentialSet = models.CredentialSet
	Account       = models.Account
	Baby          = models.Baby
	Device        = models.Device
	SleepSession  = models.SleepSession
	SessionLevel  = models.SessionLevel
	SessionStats  = models.SessionStats
	GroupedEntry  = models.GroupedEntry
)

type (
	JournalEntry      = models.JournalEntry
	JournalType       = models.JournalType
	JournalData       = models.JournalData
	DiaperData        = models.DiaperData
	BottleFeedingData = models.BottleFeedingData
	BreastFeedingData = models.BreastFeedingData
	BreastSide        = models.BreastSide
	SolidFoodData     = models.SolidFoodData
	WeightData        = models.WeightData
	HeightData        = models.HeightData
	HeadData          = models.HeadData
	PumpingData       = models.PumpingData
	DiaperType        = models.DiaperType
	MilkType          = models.MilkType
	Breast            = models.Breast
)

const (
	JournalDiaper        = models.JournalDiaper
	JournalBottleFeeding = models.JournalBottleFeeding
	JournalBreastFeeding = models.JournalBreastFeeding
	JournalSolidFood     = models.JournalSolidFood
	JournalWeight        = models.JournalWeight
	JournalHeight        = models.JournalHeight
	JournalHead          = models.JournalHead
	JournalPumping       = models.JournalPumping

	DiaperPee      = models.DiaperPee
	DiaperPoo      = models.DiaperPoo
	MilkBreastmilk = models.MilkBreastmilk
	MilkFormula    = models.MilkFormula
	BreastLeft     = models.BreastLeft
	BreastRight    = models.BreastRight
)

// Journal inputs.
type (
	Meta               = journal.Meta
	DiaperInput        = journal.DiaperInput
	BottleFeedingInput = journal.BottleFeedingInput
	BreastFeedingInput = journal.BreastFeedingInput
	SolidFoodInput     = journal.SolidFoodInput
	WeightInput        = journal.WeightInput
	HeightInput        = journal.HeightInput
	HeadInput          = journal.HeadInput
	PumpingInput       = journal.PumpingInput
)
