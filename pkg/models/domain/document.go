package domain

// DocumentType is the closed set of statutory documents produced for a bill.
type DocumentType string

const (
	DocCoverSummary       DocumentType = "cover_summary"
	DocPaymentCertificate DocumentType = "payment_certificate"
	DocWorkOrderDetail    DocumentType = "work_order_detail"
	DocBillQuantityDetail DocumentType = "bill_quantity_detail"
	DocDeviationStatement DocumentType = "deviation_statement"
	DocCertificateII      DocumentType = "certificate_ii"
	DocCertificateIII     DocumentType = "certificate_iii"
	DocNoteSheet          DocumentType = "note_sheet"
	DocExtraItems         DocumentType = "extra_items"
)

// AllDocumentTypes lists every document type in statutory print order.
var AllDocumentTypes = []DocumentType{
	DocCoverSummary,
	DocPaymentCertificate,
	DocWorkOrderDetail,
	DocBillQuantityDetail,
	DocDeviationStatement,
	DocCertificateII,
	DocCertificateIII,
	DocNoteSheet,
	DocExtraItems,
}

// DocumentTypesFor returns the document types to emit for a bill. The
// extra-items sheet is included only when the bill carries extra items.
func DocumentTypesFor(bill *Bill) []DocumentType {
	types := make([]DocumentType, 0, len(AllDocumentTypes))
	for _, dt := range AllDocumentTypes {
		if dt == DocExtraItems && !bill.HasExtraItems() {
			continue
		}
		types = append(types, dt)
	}
	return types
}

// Markup is the paginated intermediate representation handed to the
// conversion backends. Rendering is a pure function of its inputs, so
// identical inputs always produce byte-identical markup.
type Markup struct {
	DocumentType DocumentType
	HTML         []byte
}

// ArtifactFormat distinguishes the HTML intermediate from the final binary.
type ArtifactFormat string

const (
	FormatHTML ArtifactFormat = "html"
	FormatPDF  ArtifactFormat = "pdf"
)

// DocumentArtifact is one produced output. Immutable after creation; a retry
// supersedes the artifact with a new one rather than mutating it.
type DocumentArtifact struct {
	ID           string
	DocumentType DocumentType
	Format       ArtifactFormat
	Payload      []byte
	QualityScore float64
	BackendUsed  string
	Degraded     bool
}
