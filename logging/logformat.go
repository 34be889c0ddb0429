package logging

type ingestionLogEntry struct {
	ResourceID    string                    `json:"resourceId"`
	OperationName string                    `json:"operationName"`
	Category      string                    `json:"category"`
	Properties    ingestionLogEntryProperty `json:"properties"`
}

type ingestionLogEntryProperty struct {
	InstanceID    string                   `json:"instanceId"`
	TransactionID string                   `json:"transactionId"`
	Message       string                   `json:"message"`
	Action        string                   `json:"action"`
	Details       ingestionLogDetailsEntry `json:"details"`
}

type ingestionLogDetailsEntry struct {
	Message string `json:"message"`
}
