package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/hodgins-insurance/quoteserver/config"
	"github.com/hodgins-insurance/quoteserver/models"
	"github.com/hodgins-insurance/quoteserver/utils"
)

// ExportQuotes downloads the stored leads as a spreadsheet or PDF for the
// agent. format=xlsx (default) or format=pdf.
func ExportQuotes(c *gin.Context) {
	utils.LogInfo("ExportQuotes called")

	format := c.DefaultQuery("format", "xlsx")
	if format != "xlsx" && format != "pdf" {
		utils.LogError("Invalid export format specified: %s", format)
		utils.BadRequest(c, "Invalid format", "Format must be xlsx or pdf")
		return
	}

	quotes, err := config.Store.Load()
	if err != nil {
		utils.LogError("Failed to load quotes for export: %v", err)
		utils.InternalServerError(c, "Failed to fetch quotes", err)
		return
	}
	utils.LogDebug("Exporting %d quotes as %s", len(quotes), format)

	if format == "pdf" {
		exportQuotesPDF(c, quotes)
		return
	}
	exportQuotesExcel(c, quotes)
}

func exportQuotesExcel(c *gin.Context, quotes []models.QuoteSubmission) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Quote Requests")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err)
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("HODGINS INSURANCE GROUP - Quote Requests")
	infoRow := sheet.AddRow()
	infoRow.AddCell().SetString("Generated: " + time.Now().Format("2006-01-02 15:04"))
	countRow := sheet.AddRow()
	countRow.AddCell().SetString(fmt.Sprintf("Total leads: %d", len(quotes)))
	sheet.AddRow() // spacing

	headers := []string{"Quote ID", "Name", "Phone", "Email", "Address", "City", "Zip", "Sq Ft", "Year Built", "Ownership", "Review Date", "Review Time", "Submitted"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, q := range quotes {
		row := sheet.AddRow()
		row.AddCell().SetString(q.ID)
		row.AddCell().SetString(q.FullName)
		row.AddCell().SetString(q.Phone)
		row.AddCell().SetString(q.Email)
		row.AddCell().SetString(q.Address)
		row.AddCell().SetString(q.City)
		row.AddCell().SetString(q.ZipCode)
		row.AddCell().SetInt(q.SquareFeet)
		row.AddCell().SetInt(q.YearBuilt)
		row.AddCell().SetString(q.Ownership)
		row.AddCell().SetString(q.ReviewDate)
		row.AddCell().SetString(q.ReviewTime)
		row.AddCell().SetString(q.Timestamp)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=quote_requests.xlsx")
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
	}
}

func exportQuotesPDF(c *gin.Context, quotes []models.QuoteSubmission) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, "HODGINS INSURANCE GROUP - Quote Requests")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Generated: "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Total leads: %d", len(quotes)))
	pdf.Ln(10)

	headers := []string{"Name", "Phone", "Email", "Address", "City", "Zip", "Sq Ft", "Year", "Own/Rent", "Review", "Submitted"}
	colWidths := []float64{35, 25, 45, 50, 25, 18, 15, 13, 18, 22, 28}
	pdf.SetFont("Arial", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, q := range quotes {
		submitted := q.Timestamp
		if t, err := time.Parse(time.RFC3339, q.Timestamp); err == nil {
			submitted = t.Format("2006-01-02 15:04")
		}
		cells := []string{
			q.FullName,
			q.Phone,
			q.Email,
			q.Address,
			q.City,
			q.ZipCode,
			fmt.Sprintf("%d", q.SquareFeet),
			fmt.Sprintf("%d", q.YearBuilt),
			q.Ownership,
			q.ReviewDate,
			submitted,
		}
		for i, cell := range cells {
			pdf.CellFormat(colWidths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=quote_requests.pdf")
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
	}
}
