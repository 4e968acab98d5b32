package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	atendimentosSaved = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sedesgo",
		Subsystem: "persistence",
		Name:      "atendimentos_saved_total",
		Help:      "Activity records saved, labeled by the store that accepted the write.",
	}, []string{"destination"})
	remoteWriteFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sedesgo",
		Subsystem: "persistence",
		Name:      "remote_write_failures_total",
		Help:      "Remote store writes absorbed by the local fallback.",
	})
	pdfExtractions = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sedesgo",
		Subsystem: "pdf",
		Name:      "extractions_total",
		Help:      "PDF documents successfully extracted.",
	})
	pdfImagesSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sedesgo",
		Subsystem: "pdf",
		Name:      "images_skipped_total",
		Help:      "Embedded images skipped due to unsupported layout or decode failure.",
	})
)

func init() {
	prometheus.MustRegister(atendimentosSaved, remoteWriteFailures, pdfExtractions, pdfImagesSkipped)
}

// RecordAtendimentoSaved counts a save by destination ("remote" or "local")
func RecordAtendimentoSaved(destination string) {
	atendimentosSaved.WithLabelValues(destination).Inc()
}

// RecordRemoteWriteFailure counts an absorbed remote write error
func RecordRemoteWriteFailure() {
	remoteWriteFailures.Inc()
}

// RecordPDFExtraction counts a completed document extraction
func RecordPDFExtraction() {
	pdfExtractions.Inc()
}

// RecordPDFImageSkipped counts an image omitted from an extraction
func RecordPDFImageSkipped() {
	pdfImagesSkipped.Inc()
}
