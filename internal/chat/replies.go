package chat

import (
	"fmt"
	"strings"

	"github.com/selimbz/partsbot/internal/catalog"
)

// Canned reply texts and builders, in conversation order.

const (
	replyWelcome = "👋 **Welcome to the Spare Parts Assistant!**\n\n🔧 I can help you find any spare part for any vehicle.\n\nHow can I assist you today?"

	replyAskVehicle = "🚗 **Let's find the perfect spare part for your vehicle!**\n\nPlease tell me your vehicle's brand, model and year in one message (e.g., \"Toyota Corolla 2018\").\n\n💡 The year is optional."

	replyVehicleReprompt = "Please tell me at least your vehicle's brand and model (e.g., \"Peugeot 208\"):"

	replyAskSearchType = "**How would you like to search for your spare part?**\n\n🔍 Choose your search method:"

	replyAskReference = "📋 **Reference Number Search**\n\nPlease enter the part reference number (OEM number, part code, etc.):"

	replyAskPartName = "🔧 **Part Name Search**\n\nWhat spare part are you looking for?\n\n💡 Examples: brake pads, oil filter, alternator, timing belt, spark plugs..."

	replyAskContact = "📱 Please share your phone number so one of our agents can assist you:"

	replyAskPhone = "📱 **Excellent! Let's complete your order.**\n\nPlease provide your phone number:"

	replyPhoneReprompt = "Please enter a valid phone number:"

	replyAskEmail = "📧 **Thank you!**\n\nPlease provide your email address (or type 'skip'):"

	replyEmailReprompt = "Please enter a valid email address or type 'skip':"

	replyAskOrderReprompt = "Would you like to order or continue shopping?"

	replyContinueShopping = "**No problem!** How else can I help you?"

	replySearchMore = "🚗 **Let's find another part for you!**\n\nPlease tell me your vehicle's brand, model and year:"

	replyCompleteReprompt = "How else can I help you?"

	replyLostTrack = "I seem to have lost track of our conversation. Let's start fresh!\n\nHow can I help you today?"

	replyConfirmReprompt = "Please answer **Yes** or **No**:"

	replyApology = "I encountered an error processing your request. Please try again."
)

var (
	suggestionsWelcome    = []string{"Search Parts", "Track Order (Soon)", "Report (Soon)"}
	suggestionsYesNo      = []string{"Yes", "No"}
	suggestionsSearchType = []string{"Search by Reference", "Search by Part Name"}
	suggestionsOrder      = []string{"Order Now", "Continue Shopping"}
	suggestionsComplete   = []string{"Search More Parts", "Start New Search"}
	suggestionsSkip       = []string{"Skip"}
	suggestionsSearch     = []string{"Search Parts"}
)

func vehicleLabel(brand, model string, year int) string {
	label := strings.TrimSpace(brand + " " + model)
	if year > 0 {
		label = fmt.Sprintf("%s %d", label, year)
	}
	return label
}

func replyVehicleConfirmed(brand, model string, year int) string {
	return fmt.Sprintf("✅ **Great! %s confirmed.**\n\n%s", vehicleLabel(brand, model, year), replyAskSearchType)
}

func replyVehicleSuggestion(brand, model string) string {
	return fmt.Sprintf("🤔 Did you mean **%s %s**?\n\n**Please confirm:**", brand, model)
}

func replyVehicleUnknown(input string) string {
	return fmt.Sprintf("❌ I couldn't recognize '%s' as a vehicle.\n\n**Please enter your vehicle's brand and model.**\n\n💡 Examples: Toyota Corolla, BMW 320d 2015, Renault Clio...", input)
}

func replyReferenceFound(reference, brand, model string, e catalog.Entry) string {
	return fmt.Sprintf(
		"✅ **Found in our catalog!**\n\n📋 **Reference**: %s\n🚗 **Vehicle**: %s %s\n🔧 **Part**: %s\n📝 **Description**: %s\n\n**Is this what you're looking for?**",
		reference, brand, model, e.Name, e.Description,
	)
}

func replyReferenceCommitted(e *catalog.Entry) string {
	if e == nil {
		return "✅ **Reference confirmed.**\n\n**Ready to order?**"
	}
	return fmt.Sprintf("🔧 **Part**: %s\n💰 **Price**: %.0f DZD\n\n**Ready to order?**", e.Name, e.Price)
}

func replyPartValid(part string) string {
	return fmt.Sprintf("✅ Looking for **%s**\n\n**Is this correct?**", part)
}

func replyPartSuggestion(part string) string {
	return fmt.Sprintf("🔧 Are you searching for **%s**?\n\n**Please confirm:**", part)
}

func replyPartFound(s *Session, e catalog.Entry) string {
	return fmt.Sprintf(
		"🔧 **Part**: %s\n🚗 **For**: %s %s\n💰 **Price**: %.0f DZD\n\n**Ready to order?**",
		e.Name, s.Brand, s.Model, e.Price,
	)
}

// replyOrderSummary lists only what the conversation actually resolved:
// no reference line for a part-name search and vice versa.
func replyOrderSummary(s *Session) string {
	var b strings.Builder
	b.WriteString("🎉 **Perfect! Your request has been submitted successfully!**\n\n📋 **Order Summary:**\n")
	b.WriteString(fmt.Sprintf("🚗 **Vehicle**: %s\n", vehicleLabel(s.Brand, s.Model, s.Year)))
	if s.PartName != "" {
		b.WriteString(fmt.Sprintf("🔧 **Part**: %s\n", s.PartName))
	}
	if s.Reference != "" {
		b.WriteString(fmt.Sprintf("📋 **Reference**: %s\n", s.Reference))
	}
	b.WriteString(fmt.Sprintf("📱 **Phone**: %s\n", s.Phone))
	if s.Email != "" {
		b.WriteString(fmt.Sprintf("📧 **Email**: %s\n", s.Email))
	}
	b.WriteString("\n✅ **Our team will contact you within 24 hours with availability and pricing!**\n\nThank you for choosing our service!")
	return b.String()
}
