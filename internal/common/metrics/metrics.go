package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	Namespace = "musicclub"

	BotSubsystem      = "bot"
	ReminderSubsystem = "reminder"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of outgoing HTTP requests",
		},
		[]string{"service", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Outgoing HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method"},
	)
)

// Бот метрики.
var (
	UserMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: BotSubsystem,
			Name:      "user_messages_total",
			Help:      "Total number of user updates processed",
		},
		[]string{"message_type"},
	)

	AuthConfirmationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: BotSubsystem,
			Name:      "auth_confirmations_total",
			Help:      "Total number of deep-link login confirmations by result",
		},
		[]string{"result"},
	)

	ConversationTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: BotSubsystem,
			Name:      "conversation_transitions_total",
			Help:      "Total number of calendar attachment dialog transitions",
		},
		[]string{"from", "to"},
	)

	CalendarAttachTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: BotSubsystem,
			Name:      "calendar_attach_total",
			Help:      "Total number of calendar link submissions by result",
		},
		[]string{"result"},
	)
)

// Метрики напоминаний.
var (
	RemindersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ReminderSubsystem,
			Name:      "sent_total",
			Help:      "Total number of calendar reminders by status",
		},
		[]string{"status"},
	)

	ReminderRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: ReminderSubsystem,
			Name:      "run_duration_seconds",
			Help:      "Duration of a reminder routine run in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
	)
)

func RecordHTTPRequest(service, method string, statusCode int, duration time.Duration) {
	status := "success"
	if statusCode == 0 || statusCode >= 400 {
		status = "error"
	}

	HTTPRequestsTotal.WithLabelValues(service, method, status).Inc()
	HTTPRequestDuration.WithLabelValues(service, method).Observe(duration.Seconds())
}

func RecordUserMessage(messageType string) {
	UserMessagesTotal.WithLabelValues(messageType).Inc()
}

func RecordAuthConfirmation(result string) {
	AuthConfirmationsTotal.WithLabelValues(result).Inc()
}

func RecordTransition(from, to string) {
	ConversationTransitionsTotal.WithLabelValues(from, to).Inc()
}

func RecordCalendarAttach(result string) {
	CalendarAttachTotal.WithLabelValues(result).Inc()
}

func RecordReminder(status string) {
	RemindersTotal.WithLabelValues(status).Inc()
}

func RecordReminderRun(duration time.Duration) {
	ReminderRunDuration.Observe(duration.Seconds())
}
