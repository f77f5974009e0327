package handler

import (
	"fmt"
	"net/http"

	"foodstore/internal/domain/model"
	"foodstore/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/tealeg/xlsx"
)

const (
	revenueSheetName  = "Revenue"
	revenueExportFile = "revenue_by_item.xlsx"
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// 売上レポート（管理者のみ）
type ReportHandler struct {
	uc *usecase.ReportUsecase
}

// DI
func NewReportHandler(uc *usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(api *echo.Group, mw AuthMiddlewares) {
	g := api.Group("/account")
	admin := mw.For(model.RoleAdministrator)

	g.GET("/tong-doanh-thu", h.totalRevenue, admin...)
	g.GET("/tong-doanh-thu-theo-mon", h.revenueByItem, admin...)
	g.GET("/tong-doanh-thu-theo-mon/export", h.exportRevenueByItem, admin...)
	g.GET("/doanh-thu-theo-ngay-mon", h.revenueByDayAndItem, admin...)
	g.GET("/doanh-thu-cao-nhat", h.highestRevenueDay, admin...)
	g.GET("/doanh-thu-thap-nhat", h.lowestRevenueDay, admin...)
}

func (h *ReportHandler) totalRevenue(c echo.Context) error {
	out, err := h.uc.TotalRevenue(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) revenueByItem(c echo.Context) error {
	out, err := h.uc.RevenueByItem(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) revenueByDayAndItem(c echo.Context) error {
	out, err := h.uc.RevenueByDayAndItem(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) highestRevenueDay(c echo.Context) error {
	out, err := h.uc.HighestRevenueDay(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) lowestRevenueDay(c echo.Context) error {
	out, err := h.uc.LowestRevenueDay(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 料理別売上をxlsxで返す
func (h *ReportHandler) exportRevenueByItem(c echo.Context) error {
	rows, err := h.uc.RevenueByItem(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet(revenueSheetName)
	if err != nil {
		return writeError(c, err)
	}

	header := sheet.AddRow()
	for _, title := range []string{"Item", "Revenue", "Formatted"} {
		header.AddCell().SetValue(title)
	}

	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetValue(r.ItemName)
		row.AddCell().SetValue(r.Revenue.InexactFloat64())
		row.AddCell().SetValue(r.Formatted)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", revenueExportFile))
	res.Header().Set(echo.HeaderContentType, xlsxContentType)
	res.WriteHeader(http.StatusOK)
	return file.Write(res)
}
