package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/nuoiem/ms-go-donations/app/factory"
	"github.com/nuoiem/ms-go-donations/app/mapper"
	"github.com/nuoiem/ms-go-donations/app/middleware"
	"github.com/nuoiem/ms-go-donations/app/service"
	"github.com/nuoiem/ms-go-donations/app/types"
)

type ImpactController struct {
	impactService *service.ImpactService
	logger        logrus.FieldLogger
}

func NewImpactController(impactService *service.ImpactService) *ImpactController {
	return &ImpactController{
		impactService: impactService,
		logger:        factory.NewModuleLogger("impact-controller"),
	}
}

func (c *ImpactController) SubmitProof(ctx echo.Context) error {
	req, err := types.NewSubmitProofRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	req.SubmittedBy = middleware.WalletAddress(ctx)
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	proof, err := c.impactService.SubmitProof(ctx.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return writeError(ctx, http.StatusBadRequest, err.Error())
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Submit proof failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusCreated, types.NewSuccessResponse(mapper.ProofToResponse(proof)))
}

func (c *ImpactController) ListCampaignProofs(ctx echo.Context) error {
	req, err := types.NewListProofsRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.impactService.ListProofs(ctx.Request().Context(), req)
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("List campaign proofs failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, types.NewSuccessResponse(mapper.ProofsToResponses(items)))
}

// ProofIpfsURL expands a proof CID into public IPFS gateway URLs. The
// endpoint is unauthenticated; it only templates the identifier.
func (c *ImpactController) ProofIpfsURL(ctx echo.Context) error {
	req, err := types.NewProofIpfsURLRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	return ctx.JSON(http.StatusOK, types.NewSuccessResponse(c.impactService.ProofGatewayURLs(req.CID)))
}
