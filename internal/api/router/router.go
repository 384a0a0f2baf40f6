package router

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"cv-agent-go/internal/api/handler"
)

// RegisterRoutes 注册 API 路由
// defaultInsights为请求未携带insights参数时的缺省行为
func RegisterRoutes(h *server.Hertz, resumeHandler *handler.ResumeHandler, defaultInsights bool) {
	api := h.Group("/api/v1")

	api.POST("/resume/extract", func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}

		withInsights := defaultInsights
		if v := ctx.PostForm("insights"); v != "" {
			withInsights = v == "true"
		}

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		resp, err := resumeHandler.HandleResumeExtract(
			c,
			file,
			fileHeader.Size,
			fileHeader.Filename,
			withInsights,
		)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}

		ctx.JSON(consts.StatusOK, resp)
	})

	// 健康检查
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}
