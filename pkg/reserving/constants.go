package reserving

const (
	operationCreateReserve    = "create_reserve"
	operationReviseReserve    = "revise_reserve"
	operationSubmitReserve    = "submit_reserve"
	operationApproveReserve   = "approve_reserve"
	operationSupersedeReserve = "supersede_reserve"

	operationCreateDamageItem  = "create_damage_item"
	operationUpdateDamageItem  = "update_damage_item"
	operationAdvanceDamageItem = "advance_damage_item"

	operationAllocatePCSum    = "allocate_pc_sum"
	operationRecordPCSumSpend = "record_pc_sum_spend"
	operationClosePCSum       = "close_pc_sum"

	operationStatusOK    = "ok"
	operationStatusError = "error"
)
