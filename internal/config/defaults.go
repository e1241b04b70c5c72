package config

const (
	// DefaultHost is the default MySQL host
	DefaultHost = "localhost"
	// DefaultPort is the default MySQL port
	DefaultPort = 3306
	// DefaultUsername is the default MySQL user
	DefaultUsername = "superuser"
	// DefaultPassword is the default MySQL password
	DefaultPassword = "passw0rd"
	// DefaultInputPath is the default directory holding the result files
	DefaultInputPath = "."
	// DefaultOutput is the default result file name
	DefaultOutput = "output.xml"
	// DefaultReportType is the default report type
	DefaultReportType = "RF"
	// DefaultLogLevel is the default logrus level
	DefaultLogLevel = "info"
	// DefaultTrackSuiteSkipped counts suites that neither passed nor failed as skipped
	DefaultTrackSuiteSkipped = true
)

// EnvPrefix prefixes every environment variable read by the config, e.g. RFHISTORIC_HOST
const EnvPrefix = "RFHISTORIC"

// Keys shared by flags, environment variables and the config
const (
	KeyHost          = "host"
	KeyPort          = "port"
	KeyUsername      = "username"
	KeyPassword      = "password"
	KeyProjectName   = "projectname"
	KeyExecutionName = "executionname"
	KeyInputPath     = "inputpath"
	KeyOutput        = "output"
	KeyReportType    = "report_type"
	KeyLogLevel      = "log-level"
)

// EnvFile is the dotenv file read from the working and input directories
const EnvFile = ".env"
