package logging

// Standardized field names for structured logging.
const (
	FieldOperation     = "operation"
	FieldLocation      = "location"
	FieldBackend       = "backend"
	FieldStage         = "stage"
	FieldFormat        = "format"
	FieldError         = "error"
	FieldCount         = "count"
	FieldIndex         = "index"
	FieldCategory      = "category"
	FieldTransactionID = "transaction_id"
	FieldInputFile     = "input_file"
	FieldOutputFile    = "output_file"
	FieldDelimiter     = "delimiter"
	FieldBytes         = "bytes"
)
