package export_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	exportapp "github.com/sepur/finance/internal/application/export"
	"github.com/sepur/finance/internal/domain/finance"
	"github.com/sepur/finance/internal/domain/report"
	"github.com/sepur/finance/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var uploadTime = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func pdfArtifact(id *uuid.UUID, number string) *exportapp.Artifact {
	return &exportapp.Artifact{
		Data:          []byte("%PDF-1.4 test"),
		ContentType:   report.ContentTypePDF,
		Format:        report.FormatPDF,
		FileName:      exportapp.InvoiceFileName(number, report.FormatPDF),
		InvoiceID:     id,
		InvoiceNumber: number,
	}
}

func TestDownloadDelivery(t *testing.T) {
	sink := new(MockFileSink)
	a := pdfArtifact(nil, "INV-001")
	sink.On("Emit", mock.Anything, "invoice-INV-001.pdf", report.ContentTypePDF, a.Data).Return(nil)

	res, err := exportapp.NewDownloadDelivery(sink).Deliver(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, exportapp.ActionDownload, res.Action)
	assert.Equal(t, "invoice-INV-001.pdf", res.FileName)
	assert.Equal(t, a.Size(), res.Size)
	sink.AssertExpectations(t)
}

func TestDownloadDelivery_SinkError(t *testing.T) {
	sink := new(MockFileSink)
	sink.On("Emit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	_, err := exportapp.NewDownloadDelivery(sink).Deliver(context.Background(), pdfArtifact(nil, ""))
	assert.EqualError(t, err, "disk full")
}

func TestPreviewDelivery(t *testing.T) {
	t.Run("opened", func(t *testing.T) {
		opener := new(MockWindowOpener)
		opener.On("Open", mock.Anything, mock.Anything).Return(true, nil)

		res, err := exportapp.NewPreviewDelivery(opener).Deliver(context.Background(), pdfArtifact(nil, "INV-001"))
		require.NoError(t, err)
		assert.Equal(t, exportapp.ActionPreview, res.Action)
	})

	t.Run("blocked", func(t *testing.T) {
		opener := new(MockWindowOpener)
		opener.On("Open", mock.Anything, mock.Anything).Return(false, nil)

		res, err := exportapp.NewPreviewDelivery(opener).Deliver(context.Background(), pdfArtifact(nil, "INV-001"))
		assert.Nil(t, res)
		assert.ErrorIs(t, err, shared.ErrPopupBlocked)
		assert.Equal(t, "Pop-up blocked. Please allow pop-ups for this site.", err.Error())

		var blocked *exportapp.PopupBlockedError
		require.ErrorAs(t, err, &blocked)
		assert.Equal(t, "invoice-INV-001.pdf", blocked.FileName)
	})
}

func TestPrintDelivery(t *testing.T) {
	t.Run("injects print script before body end", func(t *testing.T) {
		opener := new(MockWindowOpener)
		var opened *exportapp.Artifact
		opener.On("Open", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			opened = args.Get(1).(*exportapp.Artifact)
		}).Return(true, nil)

		a := &exportapp.Artifact{
			Data:     []byte("<html><body><h1>INVOICE</h1></body></html>"),
			Format:   report.FormatHTML,
			FileName: "invoice-INV-001.html",
		}
		res, err := exportapp.NewPrintDelivery(opener).Deliver(context.Background(), a)
		require.NoError(t, err)
		assert.Equal(t, exportapp.ActionPrint, res.Action)

		require.NotNil(t, opened)
		html := string(opened.Data)
		assert.Contains(t, html, "window.print()")
		assert.Less(t, strings.Index(html, "window.print()"), strings.Index(html, "</body>"))
		assert.Equal(t, "<html><body><h1>INVOICE</h1></body></html>", string(a.Data), "input artifact is not mutated")
	})

	t.Run("rejects non markup", func(t *testing.T) {
		opener := new(MockWindowOpener)
		_, err := exportapp.NewPrintDelivery(opener).Deliver(context.Background(), pdfArtifact(nil, "INV-001"))
		assert.ErrorIs(t, err, shared.ErrUnsupportedExport)
		opener.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
	})

	t.Run("blocked", func(t *testing.T) {
		opener := new(MockWindowOpener)
		opener.On("Open", mock.Anything, mock.Anything).Return(false, nil)
		a := &exportapp.Artifact{Data: []byte("<p>x</p>"), Format: report.FormatHTML}
		_, err := exportapp.NewPrintDelivery(opener).Deliver(context.Background(), a)
		assert.ErrorIs(t, err, shared.ErrPopupBlocked)
	})
}

func TestUploadDelivery_Success(t *testing.T) {
	id := uuid.New()
	storage := new(MockObjectStorage)
	files := new(MockInvoiceFileRepository)
	a := pdfArtifact(&id, "INV-2024-001")

	wantName := "invoice-INV-2024-001-1710496800000.pdf"
	wantPath := "invoices/" + id.String() + "/" + wantName
	storage.On("Upload", mock.Anything, wantPath, a.Data, "application/pdf").Return(nil)
	storage.On("PublicURL", wantPath).Return("https://cdn.example.com/documents/" + wantPath)
	files.On("Save", mock.Anything, mock.MatchedBy(func(f *finance.InvoiceFile) bool {
		return f.InvoiceID != nil && *f.InvoiceID == id &&
			f.FileName == wantName && f.FilePath == wantPath &&
			f.FileType == "pdf" && f.FileSize == a.Size() &&
			f.CreatedAt.Equal(uploadTime)
	})).Return(nil)

	d := exportapp.NewUploadDelivery(storage, files, exportapp.WithUploadClock(func() time.Time { return uploadTime }))
	res, err := d.Deliver(context.Background(), a)
	require.NoError(t, err)

	assert.Equal(t, exportapp.ActionUpload, res.Action)
	assert.Equal(t, wantName, res.FileName)
	assert.Equal(t, wantPath, res.FilePath)
	assert.Equal(t, "https://cdn.example.com/documents/"+wantPath, res.URL)
	assert.Equal(t, a.Size(), res.Size)
	assert.True(t, res.MetadataRecorded)
	storage.AssertExpectations(t)
	files.AssertExpectations(t)
}

func TestUploadDelivery_DraftWithoutInvoice(t *testing.T) {
	storage := new(MockObjectStorage)
	wantPath := "invoices/unknown/invoice-draft-1710496800000.pdf"
	storage.On("Upload", mock.Anything, wantPath, mock.Anything, "application/pdf").Return(nil)
	storage.On("PublicURL", wantPath).Return("http://localhost/" + wantPath)

	d := exportapp.NewUploadDelivery(storage, nil, exportapp.WithUploadClock(func() time.Time { return uploadTime }))
	res, err := d.Deliver(context.Background(), pdfArtifact(nil, ""))
	require.NoError(t, err)
	assert.Equal(t, wantPath, res.FilePath)
	assert.False(t, res.MetadataRecorded)
}

func TestUploadDelivery_StorageFailure(t *testing.T) {
	storage := new(MockObjectStorage)
	files := new(MockInvoiceFileRepository)
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bucket not found"))

	d := exportapp.NewUploadDelivery(storage, files)
	res, err := d.Deliver(context.Background(), pdfArtifact(nil, "INV-1"))

	assert.Nil(t, res)
	assert.ErrorIs(t, err, shared.ErrUpload)
	assert.Contains(t, err.Error(), "bucket not found")
	files.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUploadDelivery_MetadataFailureIsNotFatal(t *testing.T) {
	id := uuid.New()
	storage := new(MockObjectStorage)
	files := new(MockInvoiceFileRepository)
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	storage.On("PublicURL", mock.Anything).Return("http://localhost/doc.pdf")
	files.On("Save", mock.Anything, mock.Anything).Return(errors.New("relation invoice_files does not exist"))

	d := exportapp.NewUploadDelivery(storage, files)
	res, err := d.Deliver(context.Background(), pdfArtifact(&id, "INV-1"))

	require.NoError(t, err)
	assert.Equal(t, "http://localhost/doc.pdf", res.URL)
	assert.False(t, res.MetadataRecorded)
}

func TestFileNames(t *testing.T) {
	now := time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"report csv", exportapp.ReportFileName(report.TypeInvoiceReport, report.FormatCSV, now), "invoice_report_2024-03-05.csv"},
		{"report excel", exportapp.ReportFileName(report.TypeClientReport, report.FormatExcel, now), "client_report_2024-03-05.xlsx"},
		{"report pdf", exportapp.ReportFileName(report.TypeFinancialSummary, report.FormatPDF, now), "financial_summary_2024-03-05.pdf"},
		{"invoice pdf", exportapp.InvoiceFileName("INV-7", report.FormatPDF), "invoice-INV-7.pdf"},
		{"invoice draft csv", exportapp.InvoiceFileName("  ", report.FormatCSV), "invoice-draft.csv"},
		{"invoice number with slash", exportapp.InvoiceFileName("INV/2024/7", report.FormatPDF), "invoice-INV-2024-7.pdf"},
		{"upload", exportapp.UploadFileName("INV-7", now), "invoice-INV-7-1709679600000.pdf"},
		{"upload path unknown", exportapp.UploadPath(nil, "a.pdf"), "invoices/unknown/a.pdf"},
		{"upload path nil uuid", exportapp.UploadPath(&uuid.Nil, "a.pdf"), "invoices/unknown/a.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
