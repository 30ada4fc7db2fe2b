package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/blackscholes/internal/calculation/application"
	"github.com/wyfcoding/blackscholes/internal/calculation/domain"
	"github.com/wyfcoding/blackscholes/pkg/logger"
)

// CalculateRequest 定价请求体
// 字段为指针，0 是合法输入，缺失字段才会被 required 拒绝
type CalculateRequest struct {
	S     *float64 `json:"S" binding:"required"`
	K     *float64 `json:"K" binding:"required"`
	T     *float64 `json:"T" binding:"required"`
	R     *float64 `json:"r" binding:"required"`
	Sigma *float64 `json:"sigma" binding:"required"`
	Q     *float64 `json:"q" binding:"required"`
}

func (r *CalculateRequest) toCommand() application.CalculateCommand {
	return application.CalculateCommand{
		S:     *r.S,
		K:     *r.K,
		T:     *r.T,
		R:     *r.R,
		Sigma: *r.Sigma,
		Q:     *r.Q,
	}
}

// CalculationHandler HTTP 处理器
// 负责定价与历史记录查询
type CalculationHandler struct {
	app *application.CalculationService
}

// NewCalculationHandler 创建 HTTP 处理器实例
func NewCalculationHandler(app *application.CalculationService) *CalculationHandler {
	return &CalculationHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *CalculationHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/calculate", h.Calculate)
	router.GET("/calculations", h.ListCalculations)
}

// Calculate 计算期权价格并保存记录
func (h *CalculationHandler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.app.Calculate(c.Request.Context(), req.toCommand())
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to calculate", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}

// ListCalculations 列出历史计算记录
func (h *CalculationHandler) ListCalculations(c *gin.Context) {
	calcs, err := h.app.ListCalculations(c.Request.Context())
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list calculations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if calcs == nil {
		calcs = []*domain.Calculation{}
	}
	c.JSON(http.StatusOK, calcs)
}
