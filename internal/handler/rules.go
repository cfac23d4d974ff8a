package handler

import (
	"net/http"

	"github.com/hupai/hupai/internal/constraints"
)

// RuleLibrary 返回引擎支持的规则库定义
// GET /api/v1/rules/library
func RuleLibrary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rules": constraints.Library(),
	})
}
