package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"partscatalog/controllers"
)

// RegisterRoutes wires the API route table. Literal product sub-paths
// (latest, filter, featured, exclusive) are registered before the
// parametric :id routes so they are never read as identifiers.
func RegisterRoutes(r *gin.Engine, products *controllers.ProductController, inquiries *controllers.InquiryController, upload gin.HandlerFunc, uploadDir string) {
	r.Static("/public/photos", uploadDir)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "API is healthy",
		})
	})

	api := r.Group("/api/v1")
	{
		product := api.Group("/products")
		{
			product.POST("/create", upload, products.Create)
			product.GET("/", products.GetAll)
			product.GET("/getall", products.GetAll)
			product.GET("/latest", products.Latest)
			product.GET("/filter", products.Filter)
			product.GET("/featured", products.Featured)
			product.GET("/exclusive", products.Exclusive)
			product.GET("/:id", products.GetByID)
			product.PUT("/:id", upload, products.Update)
			product.DELETE("/:id", products.Delete)
		}

		inquiry := api.Group("/inquiry")
		{
			inquiry.POST("/create", inquiries.Create)
			inquiry.GET("/getall", inquiries.GetAll)
		}
	}
}
