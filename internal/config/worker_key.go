package config

// WorkerKeyStruct names the Redis list queues consumed by background
// workers.
type WorkerKeyStruct struct {
	PersistAttemptsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	PersistAttemptsQueue: "persist_attempts_queue",
}
