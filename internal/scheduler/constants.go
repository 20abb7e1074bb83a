package scheduler

// LogMsgJobScheduled is logged once per registered job
const LogMsgJobScheduled = "Background job scheduled"
