package httpserver

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/claimworks/reserving/pkg/reserving"
)

type httpHandler struct {
	service *reserving.Service
	logger  *zap.Logger
}

type categoryAmountsRequest struct {
	Estimated decimal.Decimal `json:"estimated"`
	Actual    decimal.Decimal `json:"actual"`
}

type breakdownRequest struct {
	Building                 categoryAmountsRequest `json:"building"`
	Contents                 categoryAmountsRequest `json:"contents"`
	Consequential            categoryAmountsRequest `json:"consequential"`
	AlternativeAccommodation categoryAmountsRequest `json:"alternative_accommodation"`
	ProfessionalFees         categoryAmountsRequest `json:"professional_fees"`
}

type createReserveRequest struct {
	ReserveType string           `json:"reserve_type"`
	Currency    string           `json:"currency"`
	Notes       string           `json:"notes"`
	Breakdown   breakdownRequest `json:"breakdown"`
}

type categoryChangeRequest struct {
	Estimated *decimal.Decimal `json:"estimated"`
	Actual    *decimal.Decimal `json:"actual"`
}

type reviseReserveRequest struct {
	ReserveType              *string                `json:"reserve_type"`
	Notes                    *string                `json:"notes"`
	Building                 *categoryChangeRequest `json:"building"`
	Contents                 *categoryChangeRequest `json:"contents"`
	Consequential            *categoryChangeRequest `json:"consequential"`
	AlternativeAccommodation *categoryChangeRequest `json:"alternative_accommodation"`
	ProfessionalFees         *categoryChangeRequest `json:"professional_fees"`
}

type createDamageItemRequest struct {
	HODCodeID      string           `json:"hod_code_id"`
	ReserveID      string           `json:"reserve_id"`
	Description    string           `json:"description"`
	Location       string           `json:"location"`
	Quantity       decimal.Decimal  `json:"quantity"`
	UnitCost       decimal.Decimal  `json:"unit_cost"`
	VATRatePercent *decimal.Decimal `json:"vat_rate_percent"`
	Urgency        string           `json:"urgency"`
	Extent         string           `json:"extent"`
}

type updateDamageItemRequest struct {
	Description    *string          `json:"description"`
	Location       *string          `json:"location"`
	ReserveID      *string          `json:"reserve_id"`
	Quantity       *decimal.Decimal `json:"quantity"`
	UnitCost       *decimal.Decimal `json:"unit_cost"`
	VATRatePercent *decimal.Decimal `json:"vat_rate_percent"`
	Urgency        *string          `json:"urgency"`
	Extent         *string          `json:"extent"`
}

type advanceDamageItemRequest struct {
	To string `json:"to"`
}

type allocatePCSumRequest struct {
	Description      string          `json:"description"`
	AllocatedAmount  decimal.Decimal `json:"allocated_amount"`
	ApprovalRequired bool            `json:"approval_required"`
}

type pcSumSpendRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type recordSurveyFormRequest struct {
	FormType string          `json:"form_type"`
	Payload  json.RawMessage `json:"payload"`
}

type recordScopeVariationRequest struct {
	Description string          `json:"description"`
	CostDelta   decimal.Decimal `json:"cost_delta"`
	Payload     json.RawMessage `json:"payload"`
}

type recordContractorAssessmentRequest struct {
	Contractor   string          `json:"contractor"`
	QuotedAmount decimal.Decimal `json:"quoted_amount"`
	Payload      json.RawMessage `json:"payload"`
}

func (handler *httpHandler) projectID(ctx *gin.Context) (reserving.ProjectID, bool) {
	projectID, err := reserving.NewProjectID(ctx.Param("projectID"))
	if err != nil {
		handler.respondError(ctx, err)
		return reserving.ProjectID{}, false
	}
	return projectID, true
}

func (handler *httpHandler) actor(ctx *gin.Context) (reserving.ActorID, bool) {
	actor, err := reserving.NewActorID(actorValue(ctx))
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, errorResponse("unauthorized", "missing session identity"))
		return reserving.ActorID{}, false
	}
	return actor, true
}

func (handler *httpHandler) handleListHODCodes(ctx *gin.Context) {
	codes, err := handler.service.ListHODCodes(ctx.Request.Context())
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"hod_codes": hodCodePayloadsFrom(codes)})
}

func (handler *httpHandler) handleListReserves(ctx *gin.Context) {
	projectID, ok := handler.projectID(ctx)
	if !ok {
		return
	}
	records, err := handler.service.ListReserves(ctx.Request.Context(), projectID)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"reserves": reservePayloadsFrom(records)})
}

func (handler *httpHandler) handleCurrentReserve(ctx *gin.Context) {
	projectID, ok := handler.projectID(ctx)
	if !ok {
		return
	}
	record, err := handler.service.CurrentReserve(ctx.Request.Context(), projectID)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	if record == nil {
		ctx.JSON(http.StatusNotFound, errorResponse("not_found", "project has no reserve"))
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"reserve": reservePayloadFrom(*record)})
}

func (handler *httpHandler) handleCreateReserve(ctx *gin.Context) {
	projectID, ok := handler.projectID(ctx)
	if !ok {
		return
	}
	actor, ok := handler.actor(ctx)
	if !ok {
		return
	}
	var request createReserveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	record, err := handler.service.CreateReserve(ctx.Request.Context(), projectID, actor, reserving.ReserveInput{
		ReserveType: reserving.ReserveType(request.ReserveType),
		Breakdown: reserving.ReserveBreakdown{
			Building:                 reserving.CategoryAmounts{Estimated: request.Breakdown.Building.Estimated, Actual: request.Breakdown.Building.Actual},
			Contents:                 reserving.CategoryAmounts{Estimated: request.Breakdown.Contents.Estimated, Actual: request.Breakdown.Contents.Actual},
			Consequential:            reserving.CategoryAmounts{Estimated: request.Breakdown.Consequential.Estimated, Actual: request.Breakdown.Consequential.Actual},
			AlternativeAccommodation: reserving.CategoryAmounts{Estimated: request.Breakdown.AlternativeAccommodation.Estimated, Actual: request.Breakdown.AlternativeAccommodation.Actual},
			ProfessionalFees:         reserving.CategoryAmounts{Estimated: request.Breakdown.ProfessionalFees.Estimated, Actual: request.Breakdown.ProfessionalFees.Actual},
		},
		Currency: request.Currency,
		Notes:    request.Notes,
	})
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"reserve": reservePayloadFrom(record)})
}

func (handler *httpHandler) handleReviseReserve(ctx *gin.Context) {
	projectID, ok := handler.projectID(ctx)
	if !ok {
		return
	}
	actor, ok := handler.actor(ctx)
	if !ok {
		return
	}
	reserveID, err := reserving.NewReserveID(ctx.Param("reserveID"))
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	var request reviseReserveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	changes := reserving.ReserveChanges{
		Notes:                    request.Notes,
		Building:                 categoryChangeFrom(request.Building),
		Contents:                 categoryChangeFrom(request.Contents),
		Consequential:            categoryChangeFrom(request.Consequential),
		AlternativeAccommodation: categoryChangeFrom(request.AlternativeAccommodation),
		ProfessionalFees:         categoryChangeFrom(request.ProfessionalFees),
	}
	if request.ReserveType != nil {
		reserveType := reserving.ReserveType(*request.ReserveType)
		changes.ReserveType = &reserveType
	}
	record, err := handler.service.ReviseReserve(ctx.Request.Context(), projectID, reserveID, actor, changes)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"reserve": reservePayloadFrom(record)})
}

func categoryChangeFrom(request *categoryChangeRequest) *reserving.CategoryChange {
	if request == nil {
		return nil
	}
	return &reserving.CategoryChange{
		Estimated: request.Estimated,
		Actual:    request.Actual,
	}
}

func (handler *httpHandler) handleSubmitReserve(ctx *gin.Context) {
	handler.transitionReserve(ctx, handler.service.SubmitReserve)
}

func (handler *httpHandler) handleApproveReserve(ctx *gin.Context) {
	handler.transitionReserve(ctx, handler.service.ApproveReserve)
}

func (handler *httpHandler) handleSupersedeReserve(ctx *gin.Context) {
	handler.transitionReserve(ctx, handler.service.SupersedeReserve)
}

func (handler *httpHandler) transitionReserve(ctx *gin.Context, transition func(ctx context.Context, projectID reserving.ProjectID, reserveID reserving.ReserveID, actor reserving.ActorID) error) {
	projectID, ok := handler.projectID(ctx)
	if !ok {
		return
	}
	actor, ok := handler.actor(ctx)
	if !ok {
		return
	}
	reserveID, err := reserving.NewReserveID(ctx.Param("reserveID"))
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	if err := transition(ctx.Request.Context(), projectID, reserveID, actor); err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (handler *httpHandler) handleListDamageItems(ctx *gin.Context) {
	projectID, ok := handler.projectID(ctx)
	if !ok {
		return
	}
	items, err := handler.service.ListDamageItems(ctx.Request.Context(), projectID)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"damage_items": damageItemPayloadsFrom(items)})
}

func (handler *httpHandler) handleDamageSummary(ctx *gin.Context) {
	projectID, ok := handler.projectID(ctx)
	if !ok {
		return
	}
	summary, err := handler.service.ProjectDamageSummary(ctx.Request.Context(), projectID)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"summary": gin.H{
		"item_count":          summary.Count,
		"total_cost":          summary.TotalCost,
		"total_vat":           summary.TotalVAT,
		"total_including_vat": summary.TotalIncludingVAT,
	}})
}

func (handler *httpHandler) handleCreateDamageItem(ctx *gin.Context) {
	projectID, ok := handler.projectID(ctx)
	if !ok {
		return
	}
	actor, ok := handler.actor(ctx)
	if !ok {
		return
	}
	var request createDamageItemRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	hodCodeID, err := reserving.NewHODCodeID(request.HODCodeID)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	item, err := handler.service.CreateDamageItem(ctx.Request.Context(), projectID, actor, reserving.DamageItemInput{
		HODCodeID:      hodCodeID,
		ReserveID:      request.ReserveID,
		Description:    request.Description,
		Location:       request.Location,
		Quantity:       request.Quantity,
		UnitCost:       request.UnitCost,
		VATRatePercent: request.VATRatePercent,
		Urgency:        reserving.Urgency(request.Urgency),
		Extent:         reserving.DamageExtent(request.Extent),
	})
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"damage_item": damageItemPayloadFrom(item)})
}

func (handler *httpHandler) handleUpdateDamageItem(ctx *gin.Context) {
	projectID, ok := handler.projectID(ctx)
	if !ok {
		return
	}
	actor, ok := handler.actor(ctx)
	if !ok {
		return
	}
	itemID, err := reserving.NewDamageItemID(ctx.Param("itemID"))
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	var request updateDamageItemRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	changes := reserving.DamageItemChanges{
		Description:    request.Description,
		Location:       request.Location,
		ReserveID:      request.ReserveID,
		Quantity:       request.Quantity,
		UnitCost:       request.UnitCost,
		VATRatePercent: request.VATRatePercent,
	}
	if request.Urgency != nil {
		urgency := reserving.Urgency(*request.Urgency)
		changes.Urgency = &urgency
	}
	if request.Extent != nil {
		extent := reserving.DamageExtent(*request.Extent)
		changes.Extent = &extent
	}
	item, err := handler.service.UpdateDamageItem(ctx.Request.Context(), projectID, itemID, actor, changes)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"damage_item": damageItemPayloadFrom(item)})
}

func (handler *httpHandler) handleAdvanceDamageItem(ctx *gin.Context) {
	projectID, ok := handler.projectID(ctx)
	if !ok {
		return
	}
	actor, ok := handler.actor(ctx)
	if !ok {
		return
	}
	itemID, err := reserving.NewDamageItemID(ctx.Param("itemID"))
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	var request advanceDamageItemRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	to, err := reserving.ParseDamageStatus(request.To)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	if err := handler.service.AdvanceDamageItem(ctx.Request.Context(), projectID, itemID, actor, to); err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (handler *httpHandler) handleListPCSums(ctx *gin.Context) {
	projectID, ok := handler.projectID(ctx)
	if !ok {
		return
	}
	sums, err := handler.service.ListPCSums(ctx.Request.Context(), projectID)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"pc_sums": pcSumPayloadsFrom(sums)})
}

func (handler *httpHandler) handleAllocatePCSum(ctx *gin.Context) {
	projectID, ok := handler.projectID(ctx)
	if !ok {
		return
	}
	actor, ok := handler.actor(ctx)
	if !ok {
		return
	}
	var request allocatePCSumRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	sum, err := handler.service.AllocatePCSum(ctx.Request.Context(), projectID, actor, reserving.PCSumInput{
		Description:      request.Description,
		AllocatedAmount:  request.AllocatedAmount,
		ApprovalRequired: request.ApprovalRequired,
	})
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"pc_sum": pcSumPayloadFrom(sum)})
}

func (handler *httpHandler) handleRecordPCSumSpend(ctx *gin.Context) {
	projectID, ok := handler.projectID(ctx)
	if !ok {
		return
	}
	actor, ok := handler.actor(ctx)
	if !ok {
		return
	}
	pcSumID, err := reserving.NewPCSumID(ctx.Param("pcSumID"))
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	var request pcSumSpendRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	sum, err := handler.service.RecordPCSumSpend(ctx.Request.Context(), projectID, pcSumID, actor, request.Amount)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"pc_sum": pcSumPayloadFrom(sum)})
}

func (handler *httpHandler) handleCompletePCSum(ctx *gin.Context) {
	handler.closePCSum(ctx, reserving.PCSumStatusCompleted)
}

func (handler *httpHandler) handleCancelPCSum(ctx *gin.Context) {
	handler.closePCSum(ctx, reserving.PCSumStatusCancelled)
}

func (handler *httpHandler) closePCSum(ctx *gin.Context, to reserving.PCSumStatus) {
	projectID, ok := handler.projectID(ctx)
	if !ok {
		return
	}
	actor, ok := handler.actor(ctx)
	if !ok {
		return
	}
	pcSumID, err := reserving.NewPCSumID(ctx.Param("pcSumID"))
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	if err := handler.service.ClosePCSum(ctx.Request.Context(), projectID, pcSumID, actor, to); err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (handler *httpHandler) handleListSurveyForms(ctx *gin.Context) {
	projectID, ok := handler.projectID(ctx)
	if !ok {
		return
	}
	forms, err := handler.service.ListSurveyForms(ctx.Request.Context(), projectID)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"survey_forms": surveyFormPayloadsFrom(forms)})
}

func (handler *httpHandler) handleRecordSurveyForm(ctx *gin.Context) {
	projectID, ok := handler.projectID(ctx)
	if !ok {
		return
	}
	actor, ok := handler.actor(ctx)
	if !ok {
		return
	}
	var request recordSurveyFormRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	form, err := handler.service.RecordSurveyForm(ctx.Request.Context(), projectID, actor, request.FormType, []byte(request.Payload))
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"survey_form": surveyFormPayloadFrom(form)})
}

func (handler *httpHandler) handleListScopeVariations(ctx *gin.Context) {
	projectID, ok := handler.projectID(ctx)
	if !ok {
		return
	}
	variations, err := handler.service.ListScopeVariations(ctx.Request.Context(), projectID)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"scope_variations": scopeVariationPayloadsFrom(variations)})
}

func (handler *httpHandler) handleRecordScopeVariation(ctx *gin.Context) {
	projectID, ok := handler.projectID(ctx)
	if !ok {
		return
	}
	actor, ok := handler.actor(ctx)
	if !ok {
		return
	}
	var request recordScopeVariationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	variation, err := handler.service.RecordScopeVariation(ctx.Request.Context(), projectID, actor, request.Description, request.CostDelta, []byte(request.Payload))
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"scope_variation": scopeVariationPayloadFrom(variation)})
}

func (handler *httpHandler) handleListContractorAssessments(ctx *gin.Context) {
	projectID, ok := handler.projectID(ctx)
	if !ok {
		return
	}
	assessments, err := handler.service.ListContractorAssessments(ctx.Request.Context(), projectID)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"contractor_assessments": contractorAssessmentPayloadsFrom(assessments)})
}

func (handler *httpHandler) handleRecordContractorAssessment(ctx *gin.Context) {
	projectID, ok := handler.projectID(ctx)
	if !ok {
		return
	}
	actor, ok := handler.actor(ctx)
	if !ok {
		return
	}
	var request recordContractorAssessmentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	assessment, err := handler.service.RecordContractorAssessment(ctx.Request.Context(), projectID, actor, request.Contractor, request.QuotedAmount, []byte(request.Payload))
	if err != nil {
		handler.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"contractor_assessment": contractorAssessmentPayloadFrom(assessment)})
}
