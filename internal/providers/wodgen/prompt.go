package wodgen

import (
	"fmt"
	"strings"

	"server/internal/domain"
)

const systemInstruction = "You are an expert CrossFit coach creating personalized workouts. Always prioritize safety and proper form."

var locationDetail = map[domain.Location]string{
	domain.LocationHome: "Home workout - limited space, basic equipment",
	domain.LocationGym:  "Full gym access - complete CrossFit equipment",
}

var equipmentDetail = map[domain.Equipment]string{
	domain.EquipmentBodyweight: "Bodyweight only",
	domain.EquipmentLimited:    "Limited equipment",
	domain.EquipmentFull:       "Full equipment access",
}

var levelDetail = map[domain.Level]string{
	domain.LevelBeginner:     "Beginner - basic movements, lower intensity",
	domain.LevelIntermediate: "Intermediate - moderate intensity",
	domain.LevelAdvanced:     "Advanced - high intensity, complex movements",
}

// buildGeneratePrompt embeds the request parameters and the strict five-field
// JSON output contract into a single user instruction.
func buildGeneratePrompt(p Params) string {
	sb := &strings.Builder{}
	sb.WriteString("Create a CrossFit WOD (Workout of the Day) with the following specifications:\n\n")
	fmt.Fprintf(sb, "Location: %s (%s)\n", p.Location, locationDetail[p.Location])
	fmt.Fprintf(sb, "Equipment: %s (%s)\n", p.Equipment, equipmentDetail[p.Equipment])
	fmt.Fprintf(sb, "Level: %s (%s)\n", p.Level, levelDetail[p.Level])
	if strings.TrimSpace(p.Injury) != "" {
		fmt.Fprintf(sb, "Injury considerations: %s - modify movements to avoid aggravating this condition\n", p.Injury)
	}
	sb.WriteString(`
Please create a complete WOD with the following structure in JSON format:

{
  "title": "A catchy name for the WOD",
  "warmUp": {
    "title": "Warm-up",
    "duration": "10-15 minutes",
    "parts": ["List of warm-up exercises"]
  },
  "strengthSkill": {
    "title": "Strength or Skill work",
    "details": ["Sets, reps, and movements for strength/skill portion"]
  },
  "metcon": {
    "title": "Metcon",
    "type": "AMRAP/For Time/EMOM/etc",
    "description": "Brief description of the workout structure",
    "movements": ["List of movements with reps/weights"],
    "notes": "Any scaling options or important notes"
  },
  "coolDown": {
    "title": "Cool-down",
    "duration": "5-10 minutes",
    "parts": ["List of cool-down and mobility exercises"]
  }
}

Make sure the WOD is:
- Safe and appropriate for the specified level
- Scalable for different fitness levels
- Uses appropriate equipment based on availability
- Includes proper warm-up and cool-down
- Has clear, specific instructions
- Is challenging but achievable

Respond with ONLY the JSON object, no additional text.`)
	return sb.String()
}
