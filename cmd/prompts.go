package cmd

const weatherSystemPrompt = `You are a helpful assistant.
You have access to a function that can get the current weather in a given location.
Determine a reasonable Unit of Measurement (Celsius or Fahrenheit) for the temperature based on the location.`

const weatherQuestion = "What's the weather like in San Francisco, Tokyo, and Paris?"

const counterSystemPrompt = `You are a helpful assistant.
When the user explicitly asks a question [three times] meaning the question_counter has reached 3, tell the user: "You are awesome!".

# Tools available:
- increment_question_counter,
  This function increments the times a user has asked a question. It returns the current count for the question_counter.
`

const premiumGreeting = "Tell the user at the start of chat: You are super awesome!"

const sequentialSystemPrompt = "Assistant is a helpful assistant that helps users get answers to questions. Assistant has access to several tools and sometimes you may need to call multiple tools in sequence to get answers for your users."

const sequentialQuestion = "How much did S&P 500 change between July 12 and July 13? Use the calculator."

const historySystemPrompt = `You are a helpful assistant designed to output JSON.
Only use the functions you have been provided with.
Adhere to the descriptions for the functions/tools provided.

# Tools available:
- summarize_conversation_history,
    This function retrieves the conversation history from a data source.
    Summarize the conversation history into a concise paragraph. Limit to 100 words.
    At most 5 sentences; if you use bullets, at most 5 bullets.
    Begin the summary with "In the conversation history, we discussed...".
- generate_prompt_suggestions,
    Provides prompt suggestions based on the conversation history, return a json array, with one to 5 word suggestions.
    Limit the suggestions to 6 total.
    Always include these first: ["Review academic dashboard" , "Apply for classes", "Practice an exam question"]`

const historyQuestion = "Summarize our chat history. And also provide chat suggestions based on our chat history."

const menuSystemPrompt = "You are a helpful assistant."
