package importer

import (
	"fmt"
	"strings"
	"time"

	"mktracker-backend/internal/database"
	"mktracker-backend/internal/filter"
	"mktracker-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// POST /api/:kind/import
//
// Accepts a multipart spreadsheet (.xlsx or legacy .xls), reconciles its rows
// and bulk-inserts the result in one transaction. The outcome is a single
// pass/fail signal plus counts; there are no row-level reports. Rows with an
// unresolved branch reference import as-is and are only counted.
func ImportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind := c.Params("kind")
		if _, err := TemplateHeaders(kind); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown import kind: "+kind)
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "File upload missing: "+err.Error())
		}
		name := strings.ToLower(fileHeader.Filename)
		if !strings.HasSuffix(name, ".xlsx") && !strings.HasSuffix(name, ".xls") {
			return fiber.NewError(fiber.StatusBadRequest, "Only .xlsx and .xls files can be imported")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not open uploaded file")
		}
		defer file.Close()

		rows, err := ParseRows(file, fileHeader.Filename)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not read workbook: "+err.Error())
		}
		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Workbook has no data rows")
		}

		var branches []models.Branch
		if err := database.DB.Find(&branches).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load branches")
		}

		rec, err := Reconcile(kind, rows, branches)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			switch kind {
			case KindBranches:
				return tx.Create(&rec.Branches).Error
			case KindMachines:
				return tx.Create(&rec.Machines).Error
			case KindExpenses:
				return tx.Create(&rec.Expenses).Error
			default:
				return tx.Create(&rec.Parts).Error
			}
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bulk insert failed")
		}

		return c.JSON(fiber.Map{
			"success":            true,
			"imported":           rec.Count(),
			"unresolvedBranches": UnresolvedBranchRefs(rec, branches),
		})
	}
}

// GET /api/:kind/template
//
// Returns an empty workbook holding only the expected header row for the
// kind, ready to be filled in and re-imported.
func TemplateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind := c.Params("kind")
		headers, err := TemplateHeaders(kind)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown template kind: "+kind)
		}

		f, err := WriteRows(headers, nil)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build template")
		}
		return sendWorkbook(c, f, templateNames[kind]+".xlsx")
	}
}

// GET /api/:kind/export?search=&month=&year=&phase=&branch_id=&category=
//
// Exports the current filtered view of a collection as a one-sheet workbook,
// filename suffixed with today's date.
func ExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind := c.Params("kind")
		if _, err := TemplateHeaders(kind); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown export kind: "+kind)
		}

		f := filter.FromQuery(c)

		var branches []models.Branch
		if err := database.DB.Find(&branches).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load branches")
		}
		idx := filter.IndexBranches(branches)

		var headers []string
		var dataRows [][]any

		switch kind {
		case KindBranches:
			headers = []string{"code", "name", "type", "province", "phone", "phase", "zone"}
			for _, b := range branches {
				if !filter.MatchBranch(b, f) {
					continue
				}
				dataRows = append(dataRows, []any{b.Code, b.Name, b.Type, b.Province, b.Phone, b.Phase, b.Zone})
			}
		case KindMachines:
			var machines []models.Machine
			if err := database.DB.Find(&machines).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not load machines")
			}
			headers = []string{"branchId", "name", "sn", "installDate", "pos", "status", "remark"}
			for _, m := range machines {
				if !filter.MatchMachine(m, f, idx) {
					continue
				}
				dataRows = append(dataRows, []any{m.BranchID, m.Name, m.SN, m.InstallDate, m.POS, m.Status, m.Remark})
			}
		case KindExpenses:
			var expenses []models.Expense
			if err := database.DB.Find(&expenses).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not load expenses")
			}
			headers = []string{"date", "branchId", "type", "amount", "detail", "technician"}
			for _, e := range expenses {
				if !filter.MatchExpense(e, f, idx) {
					continue
				}
				dataRows = append(dataRows, []any{e.Date, e.BranchID, e.Type, e.Amount.InexactFloat64(), e.Detail, e.Technician})
			}
		case KindParts:
			var parts []models.SparePart
			if err := database.DB.Find(&parts).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not load spare parts")
			}
			headers = []string{"date", "branchId", "device", "partName", "qty", "unitPrice", "totalPrice", "technician"}
			for _, p := range parts {
				if !filter.MatchPart(p, f, idx) {
					continue
				}
				dataRows = append(dataRows, []any{p.Date, p.BranchID, p.Device, p.PartName, p.Qty, p.UnitPrice.InexactFloat64(), p.TotalPrice.InexactFloat64(), p.Technician})
			}
		}

		wb, err := WriteRows(headers, dataRows)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build workbook")
		}
		filename := fmt.Sprintf("MK_%s_%s.xlsx", strings.ToUpper(kind), time.Now().Format("2006-01-02"))
		return sendWorkbook(c, wb, filename)
	}
}

func sendWorkbook(c *fiber.Ctx, f *excelize.File, filename string) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Could not write workbook")
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
