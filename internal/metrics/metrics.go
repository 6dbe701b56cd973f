// Package metrics exposes Prometheus counters for attachment, collection and
// autosave activity. A nil *Recorder is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "desknotes"

// Recorder holds the application counters.
type Recorder struct {
	attachmentsSaved    *prometheus.CounterVec
	attachmentsRejected *prometheus.CounterVec
	gcRuns              *prometheus.CounterVec
	gcDeleted           prometheus.Counter
	contentWrites       *prometheus.CounterVec
}

// New creates a Recorder and registers its collectors with reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		attachmentsSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "attachments",
			Name:      "saved_total",
			Help:      "Images accepted by the attachment store, by whether a new file was written.",
		}, []string{"result"}),
		attachmentsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "attachments",
			Name:      "rejected_total",
			Help:      "Images rejected before any disk I/O, by reason.",
		}, []string{"reason"}),
		gcRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gc",
			Name:      "runs_total",
			Help:      "Orphan collection passes, by outcome.",
		}, []string{"result"}),
		gcDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gc",
			Name:      "deleted_files_total",
			Help:      "Orphaned attachment files deleted.",
		}),
		contentWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "autosave",
			Name:      "writes_total",
			Help:      "Content persistence attempts, by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(r.attachmentsSaved, r.attachmentsRejected, r.gcRuns, r.gcDeleted, r.contentWrites)
	return r
}

// AttachmentSaved counts an accepted image.
func (r *Recorder) AttachmentSaved(deduplicated bool) {
	if r == nil {
		return
	}
	result := "created"
	if deduplicated {
		result = "deduplicated"
	}
	r.attachmentsSaved.WithLabelValues(result).Inc()
}

// AttachmentRejected counts an image rejected for reason.
func (r *Recorder) AttachmentRejected(reason string) {
	if r == nil {
		return
	}
	r.attachmentsRejected.WithLabelValues(reason).Inc()
}

// GCRun counts a collection pass and the files it deleted.
func (r *Recorder) GCRun(deleted int, err error) {
	if r == nil {
		return
	}
	if err != nil {
		r.gcRuns.WithLabelValues("error").Inc()
		return
	}
	r.gcRuns.WithLabelValues("ok").Inc()
	r.gcDeleted.Add(float64(deleted))
}

// ContentWrite counts a content persistence attempt: written, skipped or failed.
func (r *Recorder) ContentWrite(result string) {
	if r == nil {
		return
	}
	r.contentWrites.WithLabelValues(result).Inc()
}
