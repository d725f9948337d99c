package report

// Static replies shared by the bot, the HTTP API and the MCP server.
const (
	WelcomeText = `🤖 **AVON X SETU AI BOT** 📊
━━━━━━━━━━━━━━━━━━━━━━━

Welcome to Advanced Trading Screenshot Analyzer!

**Features:**
✅ Real-time trading screenshot analysis
✅ Fake signal detection & manipulation alerts
✅ Next minute price predictions
✅ OTC market support
✅ Professional signal quality assessment

**How to use:**
1️⃣ Send a trading screenshot
2️⃣ Bot analyzes the chart
3️⃣ Receive detailed signal assessment

**Commands:**
/start - Show this message
/help - Display help information
/analyze - Instructions for analysis`

	HelpText = `📚 **HELP & GUIDE**
━━━━━━━━━━━━━━━━━━━━━━

**Screenshots Needed:**
• Candlestick charts (1m, 5m, 15m timeframes)
• Volume indicators visible
• Price action patterns clear
• OTC/Pump coins supported

**Analysis Includes:**
📈 Trend Direction
🎯 Entry/Exit Points
⚠️ Manipulation Detection
🔮 Next Minute Prediction
💪 Signal Strength (0-100%)

**Tips for Best Results:**
✓ Clear, high-quality screenshots
✓ Include timeframe indicator
✓ Show at least 20 candles
✓ Visible support/resistance

Start by sending a screenshot!`

	AnalyzeInstructions = `🎯 **ANALYSIS INSTRUCTIONS**
━━━━━━━━━━━━━━━━━━━━━━━━━

Simply send me a trading chart screenshot and I'll:

1. 🔍 Detect chart patterns
2. 🚨 Identify manipulation
3. 📊 Analyze volume trends
4. 🔮 Predict next movement
5. 💯 Rate signal quality

Supported Markets:
• Pump & Dump Coins
• Micro-cap OTC
• Low-cap Altcoins
• Penny Stocks

Send a screenshot to begin analysis!`

	SignalPromptText = `📊 **SIGNAL PREDICTION**
━━━━━━━━━━━━━━━━━━━━━━

Send a chart screenshot for real-time signal predictions!`

	GenericHintText = `👋 Send me a trading screenshot to analyze!

Type /help for detailed instructions.`

	TutorialText = `📖 **TUTORIAL**
━━━━━━━━━━━━━━━━━━━━━━

1️⃣ Open your trading app on a 1m, 5m or 15m chart
2️⃣ Take a screenshot with at least 20 candles visible
3️⃣ Send it here as a photo or as an image file
4️⃣ Read the report and the recommendation line

Type /help for screenshot tips.`

	SettingsText = `⚙️ **SETTINGS**
━━━━━━━━━━━━━━━━━━━━━━

There is nothing to configure. Every screenshot gets a fresh analysis.`

	ProcessingText = "🔄 Analyzing screenshot...\n\n⏳ Processing chart patterns..."

	ErrorText = "❌ Error analyzing screenshot. Please try again with a clear chart image."
)
