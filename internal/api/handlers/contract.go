package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dynastycap/capmanager/internal/repository"
	"github.com/dynastycap/capmanager/pkg/utils"
)

type ContractHandler struct {
	contracts *repository.ContractRepository
}

func NewContractHandler(contracts *repository.ContractRepository) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

// ListContracts returns every active contract in the league.
func (h *ContractHandler) ListContracts(c *gin.Context) {
	contracts, err := h.contracts.ActiveContracts(c.Request.Context())
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch contracts")
		return
	}

	utils.SendSuccessWithMeta(c, contracts, &utils.Meta{Total: len(contracts)})
}

// GetContract returns a single contract with its player and team joins.
func (h *ContractHandler) GetContract(c *gin.Context) {
	contractID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid contract ID", err.Error())
		return
	}

	contract, err := h.contracts.ContractByID(c.Request.Context(), uint(contractID))
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch contract")
		return
	}
	if contract == nil {
		utils.SendNotFound(c, "Contract not found")
		return
	}

	utils.SendSuccess(c, contract)
}
