package filter

import "github.com/af-corp/model-catalog/internal/types"

func chatRecord() types.ModelRecord {
	return types.ModelRecord{
		ModelName:        "Chat Model",
		ModelID:          "vendor.chat-v1:0",
		DeploymentType:   "Cloud",
		LatencySupport:   "real-time only",
		InputModalities:  "Text",
		OutputModalities: "Text, Chat",
	}
}

func sampleRecords() []types.ModelRecord {
	return []types.ModelRecord{
		chatRecord(),
		{
			ModelName:        "Vision Model",
			ModelID:          "vendor.vision-v1:0",
			DeploymentType:   "Cloud",
			LatencySupport:   "batch-supported",
			InputModalities:  "Text, Image",
			OutputModalities: "Text",
		},
		{
			ModelName:        "Local Model",
			ModelID:          "vendor.local-v1:0",
			DeploymentType:   "On-premises",
			LatencySupport:   "real-time only",
			InputModalities:  "Text",
			OutputModalities: "Text",
		},
		{
			ModelName:        "Image Model",
			ModelID:          "vendor.image-v1:0",
			DeploymentType:   "Hybrid",
			LatencySupport:   "Unknown",
			InputModalities:  "Text, Image",
			OutputModalities: "Image",
		},
		{
			ModelName:        "Mystery Model",
			ModelID:          "vendor.mystery-v1:0",
			DeploymentType:   "Unknown",
			LatencySupport:   "Unknown",
			InputModalities:  "Unknown",
			OutputModalities: "Unknown",
		},
	}
}

func requirement(deployment, latency string, input, output []string) types.RequirementSpec {
	return types.RequirementSpec{
		Deployment: types.DeploymentRequirement{Type: deployment},
		Latency:    types.LatencyRequirement{Type: latency},
		Modality:   types.ModalityRequirement{Input: input, Output: output},
	}
}

func names(records []types.ModelRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ModelName)
	}
	return out
}
