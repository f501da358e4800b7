package shipment

import (
	"fmt"

	"docurgent/internal/pkg/errs"
)

// DocumentType is the closed set of document categories a shipment can carry.
type DocumentType int

const (
	// DocumentTypeUnknown represents an invalid or undefined document type.
	DocumentTypeUnknown DocumentType = iota

	DocumentTypePassportCopy
	DocumentTypeBirthCertificate
	DocumentTypeMarriageCertificate
	DocumentTypeDiploma
	DocumentTypeOfficialDocument
	DocumentTypeOther
)

func getDocumentTypeStrings() map[DocumentType]string {
	return map[DocumentType]string{
		DocumentTypePassportCopy:        "passport_copy",
		DocumentTypeBirthCertificate:    "birth_certificate",
		DocumentTypeMarriageCertificate: "marriage_certificate",
		DocumentTypeDiploma:             "diploma",
		DocumentTypeOfficialDocument:    "official_document",
		DocumentTypeOther:               "other",
	}
}

// DocumentTypeFromString parses the wire representation of a document type.
func DocumentTypeFromString(s string) (DocumentType, error) {
	for dt, str := range getDocumentTypeStrings() {
		if str == s {
			return dt, nil
		}
	}
	return DocumentTypeUnknown, errs.NewValueIsInvalidErrorWithCause("document type",
		fmt.Errorf("%q is not a valid document type", s))
}

// String returns the wire representation of the document type.
func (d DocumentType) String() string {
	if str, ok := getDocumentTypeStrings()[d]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the document type is one of the defined categories.
func (d DocumentType) Validate() error {
	if _, ok := getDocumentTypeStrings()[d]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("document type",
			fmt.Errorf("%d is not a valid document type", d))
	}
	return nil
}
